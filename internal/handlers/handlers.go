package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"chantierpro/api/internal/authz"
	"chantierpro/api/internal/config"
	"chantierpro/api/internal/mailer"
	"chantierpro/api/internal/middleware"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/repository"
	"chantierpro/api/internal/service"
	"chantierpro/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	db            *pgxpool.Pool
	cache         *redis.Client
	store         *storage.ObjectStore
	authService   *service.AuthService
	uploadService *service.UploadService
	homeService   *service.HomeContentService
	mail          *mailer.Enqueuer
	users         *repository.UserRepository
	sessions      *repository.SessionRepository
	projects      projectStore
	services      serviceStore
	blog          *repository.BlogRepository
	testimonials  *repository.TestimonialRepository
	faq           *repository.FAQRepository
	newsletter    *repository.NewsletterRepository
	contacts      *repository.ContactRepository
	media         *repository.MediaRepository
	pages         *repository.PageRepository
	settings      *repository.SettingsRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bannedRepo := repository.NewBannedUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	historyRepo := repository.NewProfileHistoryRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	contactRepo := repository.NewContactRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	homeRepo := repository.NewHomeContentRepository(db)
	pageRepo := repository.NewPageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	mailEnqueuer := mailer.NewEnqueuer(cache)

	auth := service.NewAuthService(userRepo, sessionRepo, bannedRepo, tokenRepo, historyRepo, mailEnqueuer, cache, cfg, log)
	upload := service.NewUploadService(mediaRepo, store, cfg, log)
	home := service.NewHomeContentService(homeRepo, cache, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		db:            db,
		cache:         cache,
		store:         store,
		authService:   auth,
		uploadService: upload,
		homeService:   home,
		mail:          mailEnqueuer,
		users:         userRepo,
		sessions:      sessionRepo,
		projects:      projectRepo,
		services:      serviceRepo,
		blog:          blogRepo,
		testimonials:  testimonialRepo,
		faq:           faqRepo,
		newsletter:    newsletterRepo,
		contacts:      contactRepo,
		media:         mediaRepo,
		pages:         pageRepo,
		settings:      settingsRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-reset-token", h.VerifyResetToken)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/verify-email", h.VerifyEmail)

		protected := auth.Group("")
		protected.Use(middleware.Auth(h.cfg, h.users, h.sessions))
		protected.POST("/logout", h.Logout)
		protected.GET("/profile", h.Profile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.POST("/change-password", h.ChangePassword)
		protected.POST("/resend-verification", h.ResendVerification)
		protected.GET("/sessions", h.ListSessions)
		protected.GET("/profile-history", h.ListProfileHistory)
	}

	// Public reads.
	v1.GET("/projects", h.ListProjects)
	v1.GET("/projects/:slug", h.GetProject)
	v1.GET("/services", h.ListServices)
	v1.GET("/services/:slug", h.GetService)
	v1.GET("/blog", h.ListBlogPosts)
	v1.GET("/blog/:slug", h.GetBlogPost)
	v1.GET("/testimonials", h.ListTestimonials)
	v1.GET("/faq", h.ListFAQ)
	v1.GET("/home-content", h.HomeContent)
	v1.GET("/pages/:slug", h.GetPage)
	v1.GET("/site-settings", h.SiteSettings)

	v1.POST("/newsletter/subscribe", h.SubscribeNewsletter)
	v1.DELETE("/newsletter/unsubscribe", h.UnsubscribeNewsletter)
	v1.POST("/contact", h.SubmitContact)

	// Admin surface. Tokens must be admin-flagged and the live role checked.
	v1.POST("/admin/auth/login", h.AdminLogin)

	admin := v1.Group("/admin")
	admin.Use(
		middleware.Auth(h.cfg, h.users, h.sessions),
		middleware.RequireAdminContext(),
	)
	{
		admin.POST("/projects", middleware.RequirePermission(authz.PermProjectsCreate), h.CreateProject)
		admin.PUT("/projects/:id", middleware.RequirePermission(authz.PermProjectsUpdate), h.UpdateProject)
		admin.DELETE("/projects/:id", middleware.RequirePermission(authz.PermProjectsDelete), h.DeleteProject)
		admin.PATCH("/projects/:id/feature", middleware.RequirePermission(authz.PermProjectsUpdate), h.ToggleProjectFeatured)
		admin.PATCH("/projects/:id/publish", middleware.RequirePermission(authz.PermProjectsUpdate), h.ToggleProjectStatus)
		admin.GET("/projects", middleware.RequirePermission(authz.PermProjectsUpdate), h.AdminListProjects)

		admin.POST("/services", middleware.RequirePermission(authz.PermServicesCreate), h.CreateService)
		admin.PUT("/services/:id", middleware.RequirePermission(authz.PermServicesUpdate), h.UpdateService)
		admin.DELETE("/services/:id", middleware.RequirePermission(authz.PermServicesDelete), h.DeleteService)
		admin.PATCH("/services/:id/toggle-status", middleware.RequirePermission(authz.PermServicesUpdate), h.ToggleServiceStatus)
		admin.GET("/services", middleware.RequirePermission(authz.PermServicesUpdate), h.AdminListServices)

		admin.POST("/blog", middleware.RequirePermission(authz.PermBlogCreate), h.CreateBlogPost)
		admin.PUT("/blog/:id", middleware.RequirePermission(authz.PermBlogUpdate), h.UpdateBlogPost)
		admin.DELETE("/blog/:id", middleware.RequirePermission(authz.PermBlogDelete), h.DeleteBlogPost)
		admin.GET("/blog", middleware.RequirePermission(authz.PermBlogUpdate), h.AdminListBlogPosts)

		admin.POST("/testimonials", middleware.RequirePermission(authz.PermTestimonialsManage), h.CreateTestimonial)
		admin.PUT("/testimonials/:id", middleware.RequirePermission(authz.PermTestimonialsManage), h.UpdateTestimonial)
		admin.DELETE("/testimonials/:id", middleware.RequirePermission(authz.PermTestimonialsManage), h.DeleteTestimonial)
		admin.GET("/testimonials", middleware.RequirePermission(authz.PermTestimonialsManage), h.AdminListTestimonials)

		admin.POST("/faq", middleware.RequirePermission(authz.PermFAQManage), h.CreateFAQItem)
		admin.PUT("/faq/:id", middleware.RequirePermission(authz.PermFAQManage), h.UpdateFAQItem)
		admin.DELETE("/faq/:id", middleware.RequirePermission(authz.PermFAQManage), h.DeleteFAQItem)
		admin.GET("/faq", middleware.RequirePermission(authz.PermFAQManage), h.AdminListFAQ)

		admin.GET("/newsletter", middleware.RequirePermission(authz.PermNewsletterManage), h.AdminListSubscribers)

		admin.GET("/contacts", middleware.RequirePermission(authz.PermContactsManage), h.AdminListContacts)
		admin.PATCH("/contacts/:id/read", middleware.RequirePermission(authz.PermContactsManage), h.MarkContactRead)
		admin.DELETE("/contacts/:id", middleware.RequirePermission(authz.PermContactsManage), h.DeleteContact)

		admin.POST("/media", middleware.RequirePermission(authz.PermMediaUpload), h.UploadMedia)
		admin.GET("/media", middleware.RequirePermission(authz.PermMediaUpload), h.ListMedia)
		admin.DELETE("/media/:id", middleware.RequirePermission(authz.PermMediaDelete), h.DeleteMedia)

		admin.PUT("/home-content/:section", middleware.RequirePermission(authz.PermHomeContentUpdate), h.UpsertHomeSection)

		admin.POST("/pages", middleware.RequirePermission(authz.PermPagesManage), h.CreatePage)
		admin.PUT("/pages/:id", middleware.RequirePermission(authz.PermPagesManage), h.UpdatePage)
		admin.DELETE("/pages/:id", middleware.RequirePermission(authz.PermPagesManage), h.DeletePage)
		admin.GET("/pages", middleware.RequirePermission(authz.PermPagesManage), h.AdminListPages)

		admin.PUT("/settings/:key", middleware.RequirePermission(authz.PermSettingsManage), h.UpsertSetting)

		admin.GET("/users", middleware.RequirePermission(authz.PermUsersManage), h.AdminListUsers)
		admin.POST("/users", middleware.RequirePermission(authz.PermUsersManage), h.AdminCreateUser)
		admin.PATCH("/users/:id/role", middleware.RequirePermission(authz.PermUsersManage), h.AdminUpdateUserRole)
		admin.PATCH("/users/:id/status", middleware.RequirePermission(authz.PermUsersManage), h.AdminUpdateUserStatus)
		// Banning stays admin-only even if the permission table ever widens.
		admin.POST("/users/:id/ban", middleware.RequirePermission(authz.PermUsersManage), middleware.RequireRoles(models.UserRoleAdmin), h.AdminBanUser)
	}
}
