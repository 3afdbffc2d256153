package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/collegehub/cms-api/config"
	"github.com/collegehub/cms-api/database"
	"github.com/collegehub/cms-api/handlers"
	activity_handlers "github.com/collegehub/cms-api/handlers/activity"
	admission_handlers "github.com/collegehub/cms-api/handlers/admission"
	auth_handlers "github.com/collegehub/cms-api/handlers/auth"
	college_handlers "github.com/collegehub/cms-api/handlers/college"
	course_handlers "github.com/collegehub/cms-api/handlers/course"
	dashboard_handlers "github.com/collegehub/cms-api/handlers/dashboard"
	facility_handlers "github.com/collegehub/cms-api/handlers/facility"
	faculty_handlers "github.com/collegehub/cms-api/handlers/faculty"
	media_handlers "github.com/collegehub/cms-api/handlers/media"
	menu_handlers "github.com/collegehub/cms-api/handlers/menu"
	page_handlers "github.com/collegehub/cms-api/handlers/page"
	placement_handlers "github.com/collegehub/cms-api/handlers/placement"
	public_handlers "github.com/collegehub/cms-api/handlers/public"
	sharedsection_handlers "github.com/collegehub/cms-api/handlers/sharedsection"
	user_handlers "github.com/collegehub/cms-api/handlers/user"
	"github.com/collegehub/cms-api/services/storage"
	"github.com/collegehub/cms-api/utils/auth"
	"github.com/collegehub/cms-api/utils/cache"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/session"
)

// SetupRoutes wires middleware, handlers and routes onto the app
func SetupRoutes(app *fiber.App, store *database.GORMStore, getEnv *config.EnviornmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "cms-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour, // Admin session expires in 24 hours
		Issuer: jwtIssuer,
	})

	db := store.DB()

	// Redis backs the admin session store and login lockouts. Without it
	// the app still runs; tenant selection just stops persisting.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Sessions will not persist.", err)
	}

	sessions := session.NewStore(redisCache, jwtManager.SessionTTL())
	bruteForce := middleware.NewBruteForceProtection(redisCache)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)
	tenant := middleware.NewTenantMiddleware(db, sessions, getEnv.BASE_DOMAIN)

	// Hero images always live on local disk under the static dir
	static, err := storage.NewLocalStorage(getEnv.STATIC_DIR, getEnv.STATIC_URL)
	if err != nil {
		log.Fatalf("Failed to initialize static storage: %v", err)
	}

	// Media goes to the object store when configured, local disk otherwise
	var mediaStore storage.Storage = static
	if getEnv.SPACES_BUCKET != "" {
		spaces, err := storage.NewSpacesStorage(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: object storage unavailable: %v. Falling back to local storage.", err)
		} else {
			mediaStore = spaces
		}
	}

	secureCookies := getEnv.GO_ENV == "production"

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, sessions, bruteForce, secureCookies)
	collegeHandler := college_handlers.NewCollegeHandler(db, sessions)
	pageHandler := page_handlers.NewPageHandler(db)
	sectionHandler := page_handlers.NewSectionHandler(db, static)
	sharedHandler := sharedsection_handlers.NewSharedSectionHandler(db)
	courseHandler := course_handlers.NewCourseHandler(db)
	facultyHandler := faculty_handlers.NewFacultyHandler(db)
	placementHandler := placement_handlers.NewPlacementHandler(db)
	activityHandler := activity_handlers.NewActivityHandler(db)
	facilityHandler := facility_handlers.NewFacilityHandler(db)
	admissionHandler := admission_handlers.NewAdmissionHandler(db)
	menuHandler := menu_handlers.NewMenuHandler(db)
	mediaHandler := media_handlers.NewMediaHandler(db, mediaStore)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db)
	userHandler := user_handlers.NewUserHandler(db)
	publicHandler := public_handlers.NewPublicHandler(db)
	submitHandler := public_handlers.NewSubmitHandler(db, mediaStore)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Static assets (hero uploads and locally stored media)
	app.Static(getEnv.STATIC_URL, getEnv.STATIC_DIR)

	// Health check endpoint (public)
	app.Get("/ping", handlers.Health(store, redisCache))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", bruteForce.CheckAndRecordAttempt(), authHandler.Login)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), tenant.SelectedCollege(), authHandler.Me)

	// Public routes resolve the current college from the Host subdomain
	publicGroup := api.Group("/public", tenant.CurrentCollege())
	publicGroup.Get("/current", publicHandler.CurrentCollege)
	publicGroup.Get("/colleges", publicHandler.ListColleges)
	publicGroup.Get("/colleges/:slug", publicHandler.GetCollege)
	publicGroup.Get("/colleges/:slug/pages/:pageSlug", publicHandler.GetCollegePage)
	publicGroup.Get("/pages/:id", publicHandler.GetPage)
	publicGroup.Get("/courses", publicHandler.ListCourses)
	publicGroup.Get("/courses/:id", publicHandler.GetCourse)
	publicGroup.Get("/faculty", publicHandler.ListFaculty)
	publicGroup.Get("/placements", publicHandler.ListPlacements)
	publicGroup.Get("/facilities", publicHandler.ListFacilities)
	publicGroup.Get("/activities", publicHandler.ListActivities)
	publicGroup.Get("/search", publicHandler.Search)
	publicGroup.Post("/applications/submit", submitHandler.SubmitApplication)
	publicGroup.Post("/applications/documents", submitHandler.UploadDocument)
	publicGroup.Post("/enquiries/submit", submitHandler.SubmitEnquiry)

	// Admin routes require a session; the tenant middleware resolves the
	// selected college for every request in the group
	admin := api.Group("", authMiddleware.Required(), tenant.SelectedCollege())

	// Colleges (super admin only for mutations)
	admin.Get("/colleges", collegeHandler.ListColleges)
	admin.Get("/colleges/dropdown", collegeHandler.Dropdown)
	admin.Get("/colleges/:id", collegeHandler.GetCollege)
	admin.Get("/colleges/:id/descendants", collegeHandler.Descendants)
	admin.Post("/colleges/:id/select", collegeHandler.Select)
	admin.Post("/colleges", authMiddleware.RequireSuperAdmin(), collegeHandler.CreateCollege)
	admin.Put("/colleges/:id", authMiddleware.RequireSuperAdmin(), collegeHandler.UpdateCollege)
	admin.Delete("/colleges/:id", authMiddleware.RequireSuperAdmin(), collegeHandler.DeleteCollege)

	// Dashboard
	admin.Get("/dashboard", dashboardHandler.Counts)

	// Pages, sections, items
	admin.Get("/pages", pageHandler.ListPages)
	admin.Post("/pages", pageHandler.CreatePage)
	admin.Get("/pages/:id", pageHandler.GetPage)
	admin.Put("/pages/:id", pageHandler.UpdatePage)
	admin.Delete("/pages/:id", pageHandler.DeletePage)
	admin.Post("/pages/:id/inherit", pageHandler.InheritPage)
	admin.Post("/pages/:id/sections", sectionHandler.CreateSection)
	admin.Put("/sections/:id", sectionHandler.UpdateSection)
	admin.Delete("/sections/:id", sectionHandler.DeleteSection)
	admin.Post("/sections/:id/hero-image", sectionHandler.UploadHeroImage)
	admin.Post("/sections/:id/items", sectionHandler.CreateItem)
	admin.Put("/items/:id", sectionHandler.UpdateItem)
	admin.Delete("/items/:id", sectionHandler.DeleteItem)

	// Shared sections
	admin.Get("/shared-sections", sharedHandler.List)
	admin.Post("/shared-sections", sharedHandler.Create)
	admin.Put("/shared-sections/:id", sharedHandler.Update)
	admin.Delete("/shared-sections/:id", sharedHandler.Delete)
	admin.Post("/shared-sections/:id/items", sharedHandler.CreateItem)
	admin.Delete("/shared-sections/items/:id", sharedHandler.DeleteItem)
	admin.Post("/shared-sections/:id/attach", sharedHandler.Attach)
	admin.Post("/shared-sections/:id/detach", sharedHandler.Detach)

	// Courses
	admin.Get("/courses", courseHandler.ListCourses)
	admin.Post("/courses", courseHandler.CreateCourse)
	admin.Get("/courses/:id", courseHandler.GetCourse)
	admin.Put("/courses/:id", courseHandler.UpdateCourse)
	admin.Delete("/courses/:id", courseHandler.DeleteCourse)
	admin.Put("/courses/:id/page", courseHandler.UpsertCoursePage)

	// Faculty
	admin.Get("/faculty", facultyHandler.ListFaculty)
	admin.Post("/faculty", facultyHandler.CreateFaculty)
	admin.Put("/faculty/:id", facultyHandler.UpdateFaculty)
	admin.Delete("/faculty/:id", facultyHandler.DeleteFaculty)

	// Placements
	admin.Get("/placements", placementHandler.ListPlacements)
	admin.Post("/placements", placementHandler.CreatePlacement)
	admin.Put("/placements/:id", placementHandler.UpdatePlacement)
	admin.Delete("/placements/:id", placementHandler.DeletePlacement)
	admin.Post("/placements/:id/students", placementHandler.AddStudent)
	admin.Delete("/placements/students/:id", placementHandler.RemoveStudent)
	admin.Get("/recruiters", placementHandler.ListRecruiters)
	admin.Post("/recruiters", placementHandler.CreateRecruiter)
	admin.Post("/placements/:id/recruiters/:recruiterID", placementHandler.AttachRecruiter)
	admin.Delete("/placements/:id/recruiters/:recruiterID", placementHandler.DetachRecruiter)

	// Activities and facilities
	admin.Get("/activities", activityHandler.ListActivities)
	admin.Post("/activities", activityHandler.CreateActivity)
	admin.Put("/activities/:id", activityHandler.UpdateActivity)
	admin.Delete("/activities/:id", activityHandler.DeleteActivity)
	admin.Get("/facilities", facilityHandler.ListFacilities)
	admin.Post("/facilities", facilityHandler.CreateFacility)
	admin.Put("/facilities/:id", facilityHandler.UpdateFacility)
	admin.Delete("/facilities/:id", facilityHandler.DeleteFacility)

	// Admissions, applications, enquiries
	admin.Get("/admissions", admissionHandler.GetAdmission)
	admin.Put("/admissions", admissionHandler.UpsertAdmission)
	admin.Get("/applications", admissionHandler.ListApplications)
	admin.Patch("/applications/:id/status", admissionHandler.UpdateApplicationStatus)
	admin.Delete("/applications/:id", admissionHandler.DeleteApplication)
	admin.Get("/enquiries", admissionHandler.ListEnquiries)
	admin.Delete("/enquiries/:id", admissionHandler.DeleteEnquiry)

	// Menus
	admin.Get("/menus/:location", menuHandler.Tree)
	admin.Post("/menus", menuHandler.CreateItem)
	admin.Put("/menus/:id", menuHandler.UpdateItem)
	admin.Delete("/menus/:id", menuHandler.DeleteItem)

	// Admin accounts (super admin only)
	users := admin.Group("/users", authMiddleware.RequireSuperAdmin())
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// Media library
	admin.Get("/media", mediaHandler.ListMedia)
	admin.Post("/media", mediaHandler.Upload)
	admin.Put("/media/:id", mediaHandler.UpdateMedia)
	admin.Delete("/media/:id", mediaHandler.DeleteMedia)
}
