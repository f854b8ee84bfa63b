package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	httpapi "github.com/synkro-platform/synkro-backend/internal/api/http"
	apimiddleware "github.com/synkro-platform/synkro-backend/internal/api/http/middleware"
	authmiddleware "github.com/synkro-platform/synkro-backend/internal/auth/middleware"
	"github.com/synkro-platform/synkro-backend/internal/graph"
	graphhttp "github.com/synkro-platform/synkro-backend/internal/graph/http"
	projecthttp "github.com/synkro-platform/synkro-backend/internal/projects/http"
	projectrepo "github.com/synkro-platform/synkro-backend/internal/projects/repository"
	projectsvc "github.com/synkro-platform/synkro-backend/internal/projects/service"
	userhttp "github.com/synkro-platform/synkro-backend/internal/users/http"
	userrepo "github.com/synkro-platform/synkro-backend/internal/users/repository"
	usersvc "github.com/synkro-platform/synkro-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Mongo       *mongo.Client
	MongoDB     *mongo.Database
	Graph       *graph.Service
	Auth        *fbauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(apimiddleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Mongo)
	healthHandler.RegisterRoutes(r)

	users := userrepo.NewUserRepository(dep.MongoDB)
	projects := projectrepo.NewProjectRepository(dep.MongoDB)
	joins := projectrepo.NewJoinRequestRepository(dep.MongoDB)

	userService := usersvc.NewUserService(users, dep.Graph)
	projectService := projectsvc.NewProjectService(projects, joins, users, dep.Graph)

	api := r.Group("/api/v1")
	api.Use(authmiddleware.RequireUser(dep.Auth, users))

	userhttp.New(userService).Register(api.Group("/users"))
	projecthttp.New(projectService).Register(api.Group("/projects"))
	graphhttp.New(dep.Graph).Register(api)

	return r
}
