package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/halilcengel/note.verse.backend/app"
	"github.com/halilcengel/note.verse.backend/handlers"
	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware. No router-level timeout: the chat relay holds
	// long-lived streams and must not be cut off mid-reply.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Logger)
	chatHandler := handlers.NewChatHandler(deps.ChatClient, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.Repos.Users, deps.Logger)
	studentHandler := handlers.NewStudentHandler(deps.Repos.Students, deps.Logger)
	teacherHandler := handlers.NewTeacherHandler(deps.Repos.Teachers, deps.Logger)
	departmentHandler := handlers.NewDepartmentHandler(deps.Repos.Departments, deps.Logger)
	courseHandler := handlers.NewCourseHandler(deps.Repos.Courses, deps.Logger)
	offeringHandler := handlers.NewCourseOfferingHandler(deps.Repos.CourseOfferings, deps.Repos.Schedules, deps.Logger)
	enrollmentHandler := handlers.NewEnrollmentHandler(deps.Repos.Enrollments, deps.Logger)
	gradeHandler := handlers.NewGradeHandler(deps.Repos.Grades, deps.Logger)
	documentHandler := handlers.NewDocumentHandler(deps.Repos.Documents, deps.Logger)

	requireAuth := deps.AuthMiddleware.RequireAuth
	adminOnly := deps.AuthMiddleware.RequireRole(models.RoleAdmin)
	staffOnly := deps.AuthMiddleware.RequireRole(models.RoleAdmin, models.RoleTeacher)

	// Health check endpoints
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/register", authHandler.HandleRegister)
			r.With(requireAuth).Get("/verify", authHandler.HandleVerify)
		})

		// Chat relay
		r.With(requireAuth).Post("/chat", chatHandler.HandleChat)

		// User management (admin only)
		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", userHandler.HandleGetMe)
			r.With(adminOnly).Get("/", userHandler.HandleList)
			r.With(adminOnly).Get("/{id}", userHandler.HandleGet)
			r.With(adminOnly).Put("/{id}", userHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", userHandler.HandleDelete)
		})

		// Departments
		r.Route("/departments", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", departmentHandler.HandleList)
			r.Get("/{id}", departmentHandler.HandleGet)
			r.With(adminOnly).Post("/", departmentHandler.HandleCreate)
			r.With(adminOnly).Put("/{id}", departmentHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", departmentHandler.HandleDelete)
		})

		// Course catalog
		r.Route("/courses", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", courseHandler.HandleList)
			r.Get("/{id}", courseHandler.HandleGet)
			r.With(adminOnly).Post("/", courseHandler.HandleCreate)
			r.With(adminOnly).Put("/{id}", courseHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", courseHandler.HandleDelete)
		})

		// Course offerings and their schedules
		r.Route("/course-offerings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", offeringHandler.HandleList)
			r.Get("/{id}", offeringHandler.HandleGet)
			r.Get("/{id}/enrollments", enrollmentHandler.HandleListByOffering)
			r.With(adminOnly).Post("/", offeringHandler.HandleCreate)
			r.With(adminOnly).Put("/{id}", offeringHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", offeringHandler.HandleDelete)
			r.With(adminOnly).Post("/{id}/schedules", offeringHandler.HandleAddSchedule)
			r.With(adminOnly).Delete("/{id}/schedules/{scheduleId}", offeringHandler.HandleDeleteSchedule)
		})

		// Students
		r.Route("/students", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(staffOnly).Get("/", studentHandler.HandleList)
			r.With(staffOnly).Get("/{id}", studentHandler.HandleGet)
			r.With(adminOnly).Post("/", studentHandler.HandleCreate)
			r.With(adminOnly).Put("/{id}", studentHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", studentHandler.HandleDelete)
		})

		// Teachers
		r.Route("/teachers", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", teacherHandler.HandleList)
			r.Get("/{id}", teacherHandler.HandleGet)
			r.With(adminOnly).Post("/", teacherHandler.HandleCreate)
			r.With(adminOnly).Put("/{id}", teacherHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", teacherHandler.HandleDelete)
		})

		// Enrollments
		r.Route("/enrollments", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(staffOnly).Get("/", enrollmentHandler.HandleList)
			r.Get("/{id}", enrollmentHandler.HandleGet)
			r.Post("/", enrollmentHandler.HandleCreate)
			r.With(staffOnly).Put("/{id}", enrollmentHandler.HandleUpdateStatus)
			r.With(adminOnly).Delete("/{id}", enrollmentHandler.HandleDelete)
		})

		// Grades
		r.Route("/grades", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{id}", gradeHandler.HandleGet)
			r.With(staffOnly).Get("/", gradeHandler.HandleList)
			r.With(staffOnly).Post("/", gradeHandler.HandleCreate)
			r.With(staffOnly).Put("/{id}", gradeHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", gradeHandler.HandleDelete)
		})

		// Department documents
		r.Route("/documents", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", documentHandler.HandleList)
			r.Get("/{id}", documentHandler.HandleGet)
			r.With(staffOnly).Post("/", documentHandler.HandleCreate)
			r.With(staffOnly).Put("/{id}", documentHandler.HandleUpdate)
			r.With(adminOnly).Delete("/{id}", documentHandler.HandleDelete)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Route not found")
	})

	return r
}
