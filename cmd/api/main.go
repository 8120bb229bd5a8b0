package main

import (
	"fmt"
	"net/http"

	"github.com/leavedesk/leave-backend-go/internal/config"
	appHTTP "github.com/leavedesk/leave-backend-go/internal/handler/http"
	"github.com/leavedesk/leave-backend-go/internal/pkg/database"
	"github.com/leavedesk/leave-backend-go/internal/pkg/jwt"
	"github.com/leavedesk/leave-backend-go/internal/pkg/presence"
	"github.com/leavedesk/leave-backend-go/internal/repository/postgresql"
	authService "github.com/leavedesk/leave-backend-go/internal/service/auth"
	leaveService "github.com/leavedesk/leave-backend-go/internal/service/leave"
	notificationService "github.com/leavedesk/leave-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	registry := presence.NewRegistry()

	notifService := notificationService.NewNotificationService(notificationRepo, registry)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveRequestRepo, leaveBalanceRepo, userRepo, notifService)
	authSvc := authService.NewAuthService(transactor, userRepo, leaveBalanceRepo, JWTService)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, notifService)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, JWTService, registry)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		leaveHandler,
		notificationHandler,
		cfg.App.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
