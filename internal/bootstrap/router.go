package bootstrap

import (
	"database/sql"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/leadhive/leadhive-backend/internal/api/http"
	"github.com/leadhive/leadhive-backend/internal/auth"
	leadshttp "github.com/leadhive/leadhive-backend/internal/leads/http"
	leadsrepo "github.com/leadhive/leadhive-backend/internal/leads/repository"
	leadssvc "github.com/leadhive/leadhive-backend/internal/leads/service"
	matchingdomain "github.com/leadhive/leadhive-backend/internal/matching/domain"
	matchinghttp "github.com/leadhive/leadhive-backend/internal/matching/http"
	matchingrepo "github.com/leadhive/leadhive-backend/internal/matching/repository"
	matchingsvc "github.com/leadhive/leadhive-backend/internal/matching/service"
	"github.com/leadhive/leadhive-backend/internal/notify"
	proposalshttp "github.com/leadhive/leadhive-backend/internal/proposals/http"
	proposalsrepo "github.com/leadhive/leadhive-backend/internal/proposals/repository"
	proposalssvc "github.com/leadhive/leadhive-backend/internal/proposals/service"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	DB            *pgxpool.Pool
	SQLDB         *sql.DB
	Redis         *redis.Client
	AuthClient    *firebaseauth.Client // nil enables the dev header fallback
	Weights       matchingdomain.Weights
	RetentionDays int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	leadRepo := leadsrepo.NewLeadRepository(dep.DB)
	proposalRepo := proposalsrepo.NewProposalRepository(dep.SQLDB)
	prefRepo := matchingrepo.NewPreferenceRepository(dep.Redis)
	notifier := notify.NewRedisNotifier(dep.Redis)

	leadService := leadssvc.NewLeadService(leadRepo, dep.RetentionDays)
	rankingService := matchingsvc.NewRankingService(leadRepo, prefRepo, dep.Weights)
	proposalService := proposalssvc.NewProposalService(proposalRepo, leadRepo, notifier)

	api := r.Group("/api/v1")
	if dep.AuthClient != nil {
		api.Use(auth.Middleware(dep.AuthClient))
	} else {
		api.Use(auth.DevUser())
	}

	matchinghttp.New(rankingService).Register(api)

	leadHandler := leadshttp.New(leadService)
	proposalHandler := proposalshttp.New(proposalService)

	leadsGroup := api.Group("/leads")
	leadHandler.Register(leadsGroup)
	proposalHandler.RegisterLeadSubroutes(leadsGroup)
	proposalHandler.Register(api)

	return r
}
