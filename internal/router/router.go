package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "petcheck/docs"
	mem "petcheck/internal/adapters/storage/memory"
	pg "petcheck/internal/adapters/storage/postgres"
	"petcheck/internal/domain/consultations"
	"petcheck/internal/domain/dashboard"
	"petcheck/internal/domain/medications"
	"petcheck/internal/domain/pets"
	"petcheck/internal/domain/preferences"
	"petcheck/internal/domain/reminders"
	"petcheck/internal/domain/sessions"
	"petcheck/internal/domain/vaccines"
	"petcheck/internal/middleware"
	"petcheck/internal/platform/logger"
	"petcheck/internal/ports/auth"
	"petcheck/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Verifier nil = modo dev (X-Debug-User-ID).
	Verifier     auth.Verifier
	SessionStore auth.SessionStore
	// Authenticator nil = /auth/login responde 503.
	Authenticator auth.Authenticator

	// Notifier nil = los lembretes se guardan sin aviso remoto.
	Notifier notify.Notifier

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger       logger.Logger
	CookieSecure bool
	CookieMaxAge time.Duration
}

type repositories struct {
	pets          pets.Repository
	consultations consultations.Repository
	vaccines      vaccines.Repository
	medications   medications.Repository
	reminders     reminders.Repository
	preferences   preferences.Repository
}

func newRepositories(db *sql.DB) repositories {
	if db != nil {
		return repositories{
			pets:          pg.NewPetsRepo(db),
			consultations: pg.NewConsultationsRepo(db),
			vaccines:      pg.NewVaccinesRepo(db),
			medications:   pg.NewMedicationsRepo(db),
			reminders:     pg.NewRemindersRepo(db),
			preferences:   pg.NewPreferencesRepo(db),
		}
	}

	store := mem.NewStore()
	return repositories{
		pets:          store.Pets(),
		consultations: store.Consultations(),
		vaccines:      store.Vaccines(),
		medications:   store.Medications(),
		reminders:     store.Reminders(),
		preferences:   store.Preferences(),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AuthContext(opts.Verifier, opts.SessionStore))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repos := newRepositories(opts.DB)

	// Services por módulo
	petsSvc := pets.NewService(repos.pets)
	prefsSvc := preferences.NewService(repos.preferences)
	remindersSvc := reminders.NewService(repos.reminders, opts.Notifier, log.With(map[string]any{"module": "reminders"}))
	consultationsSvc := consultations.NewService(repos.consultations)
	vaccinesSvc := vaccines.NewService(repos.vaccines, remindersSvc, log.With(map[string]any{"module": "vaccines"}))
	medicationsSvc := medications.NewService(repos.medications, remindersSvc, log.With(map[string]any{"module": "medications"}))
	dashboardSvc := dashboard.NewService(dashboard.Sources{
		Pets:          petsSvc,
		Consultations: consultationsSvc,
		Reminders:     remindersSvc,
		Vaccines:      vaccinesSvc,
		Medications:   medicationsSvc,
	})
	sessionsSvc := sessions.NewService(opts.Authenticator, opts.SessionStore)

	// Rutas por módulo
	sessions.RegisterRoutes(r, sessionsSvc, sessions.CookieOptions{Secure: opts.CookieSecure, MaxAge: opts.CookieMaxAge})
	pets.RegisterRoutes(r, petsSvc)
	preferences.RegisterRoutes(r, prefsSvc)
	reminders.RegisterRoutes(r, remindersSvc, petsSvc)
	consultations.RegisterRoutes(r, consultationsSvc, petsSvc)
	vaccines.RegisterRoutes(r, vaccinesSvc, petsSvc)
	medications.RegisterRoutes(r, medicationsSvc, petsSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}
