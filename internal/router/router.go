package router

import (
	"time"

	"github.com/parmenasoares/track-and-work/internal/config"
	"github.com/parmenasoares/track-and-work/internal/handler"
	"github.com/parmenasoares/track-and-work/internal/infra"
	"github.com/parmenasoares/track-and-work/internal/middleware"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/piicrypt"
	"github.com/parmenasoares/track-and-work/internal/repository"
	"github.com/parmenasoares/track-and-work/internal/service"
	"github.com/parmenasoares/track-and-work/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/Storage
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store *infra.ObjectStore, enc *piicrypt.Encryptor) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	clientRepo := repository.NewClientRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, roleRepo, cfg)
	roleSvc := service.NewRoleService(userRepo, roleRepo)
	machineSvc := service.NewMachineService(machineRepo)
	masterDataSvc := service.NewMasterDataService(clientRepo, locationRepo, serviceRepo)
	activitySvc := service.NewActivityService(activityRepo, machineRepo, store)
	complianceSvc := service.NewComplianceService(complianceRepo, enc)
	documentSvc := service.NewDocumentService(documentRepo, complianceRepo, verificationRepo, store, dispatcher)
	verificationSvc := service.NewVerificationService(verificationRepo, complianceRepo, documentRepo, userRepo, dispatcher)
	statsSvc := service.NewStatsService(userRepo, machineRepo, activityRepo, roleRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(roleSvc)
	machinesH := handler.NewMachinesHandler(machineSvc)
	masterDataH := handler.NewMasterDataHandler(masterDataSvc)
	activitiesH := handler.NewActivitiesHandler(activitySvc)
	approvalsH := handler.NewApprovalsHandler(activitySvc)
	documentsH := handler.NewDocumentsHandler(documentSvc, complianceSvc)
	verificationsH := handler.NewVerificationsHandler(verificationSvc, documentSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	filesH := handler.NewFilesHandler(store)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Signed file URLs — the signature is the credential, no session needed
	r.GET("/v1/files/:bucket/*path", filesH.Serve)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/signup", authH.Signup)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		// Operator activity lifecycle — any authenticated account
		v1.POST("/activities", activitiesH.Start)
		v1.GET("/activities/open", activitiesH.Open)
		v1.GET("/activities/mine", activitiesH.ListMine)
		v1.POST("/activities/:id/close", activitiesH.Close)
		v1.POST("/activities/photos", activitiesH.UploadPhoto)
		v1.GET("/activities/:id/photos", activitiesH.Photos)

		// Reference data reads — operators need these on the start screen
		v1.GET("/machines", machinesH.List)
		v1.GET("/machines/:id", machinesH.Get)
		v1.GET("/clients", masterDataH.ListClients)
		v1.GET("/locations", masterDataH.ListLocations)
		v1.GET("/services", masterDataH.ListServices)

		// Compliance (own documents)
		v1.GET("/documents/me", documentsH.My)
		v1.PUT("/compliance", documentsH.UpsertCompliance)
		v1.POST("/documents/signed-url", documentsH.SignedURL)
		v1.POST("/documents/:doc_type", documentsH.Upload)
		v1.DELETE("/documents/:doc_type", documentsH.Delete)
		v1.POST("/verification/submit", documentsH.SubmitVerification)

		// Admin validation and role administration
		admin := v1.Group("/admin", middleware.RequireAdminOrAbove())
		{
			admin.GET("/activities", approvalsH.List)
			admin.POST("/activities/:id/review", approvalsH.Review)
			admin.GET("/activities/:id/report.pdf", approvalsH.Report)

			admin.GET("/users", usersH.List)
			admin.GET("/roles", usersH.ListAssignments)
			admin.POST("/roles", usersH.SetRole)
			admin.DELETE("/roles", usersH.RemoveRole)

			admin.GET("/verifications", verificationsH.List)
			admin.POST("/verifications/signed-url", verificationsH.SignedURL)
			admin.GET("/verifications/:user_id", verificationsH.Detail)
			admin.POST("/verifications/:user_id/review", verificationsH.Review)
		}

		// Fleet and master data management — super admin only
		superadmin := v1.Group("/superadmin", middleware.RequireRole(model.RoleSuperAdmin))
		{
			superadmin.POST("/assign", usersH.SuperAdminAssign)
			superadmin.GET("/stats", statsH.SuperAdmin)

			superadmin.POST("/machines", machinesH.Create)
			superadmin.PATCH("/machines/:id", machinesH.Update)
			superadmin.DELETE("/machines/:id", machinesH.Delete)

			superadmin.POST("/clients", masterDataH.CreateClient)
			superadmin.DELETE("/clients/:id", masterDataH.DeleteClient)
			superadmin.POST("/locations", masterDataH.CreateLocation)
			superadmin.DELETE("/locations/:id", masterDataH.DeleteLocation)
			superadmin.POST("/services", masterDataH.CreateService)
			superadmin.DELETE("/services/:id", masterDataH.DeleteService)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
