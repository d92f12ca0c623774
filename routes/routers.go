package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"parkeasy/constants"
	"parkeasy/controllers"
	middlewares "parkeasy/middleware"
	"parkeasy/services"
	"parkeasy/services/logger"
	"parkeasy/services/notification"
)

// SetupRoutes builds the services and wires every endpoint under /api/v1.
// The booking service is returned so main can hand it to the cron jobs.
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) *services.BookingService {
	router.Use(middlewares.ErrorHandler())

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)
	notifier := notification.NewMelodyService(db, m)
	controllers.SetNotifier(notifier)
	services.SetNotifier(notifier)

	availabilityService := services.NewAvailabilityService(services.AvailabilityServiceOptions{
		DB:     db,
		Logger: appLogger,
	})
	listingService := services.NewListingService(services.ListingServiceOptions{
		DB:           db,
		Logger:       appLogger,
		Availability: availabilityService,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:           db,
		Logger:       appLogger,
		Availability: availabilityService,
		Notifier:     notifier,
	})
	chatService := services.NewChatService(services.ChatServiceOptions{
		DB:       db,
		Logger:   appLogger,
		Melody:   m,
		Notifier: notifier,
	})
	m.HandleMessage(chatService.HandleMessage)

	listingController := controllers.NewListingController(listingService, redisCli)
	bookingController := controllers.NewBookingController(bookingService)
	chatController := controllers.NewChatController(chatService, m)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.GET("/profile", middlewares.AuthMiddleware(), controllers.GetProfile)
	v1.POST("/verification", middlewares.AuthMiddleware(), controllers.SubmitVerification)
	v1.PUT("/verification", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.DecideVerification)

	v1.GET("/users/:id", controllers.GetUserByID)
	v1.POST("/favorites/:id", middlewares.AuthMiddleware(), controllers.AddFavorite)
	v1.DELETE("/favorites/:id", middlewares.AuthMiddleware(), controllers.RemoveFavorite)
	v1.GET("/favorites", middlewares.AuthMiddleware(), controllers.GetFavorites)
	v1.GET("/notifications", middlewares.AuthMiddleware(), controllers.GetNotifications)
	v1.PUT("/notifications/read", middlewares.AuthMiddleware(), controllers.MarkNotificationsRead)
	v1.POST("/notifications/broadcast", middlewares.AuthMiddleware(constants.RoleAdmin), controllers.BroadcastNotification)

	v1.GET("/listings", listingController.SearchListings)
	v1.GET("/listings/:id", listingController.GetListingDetail)
	v1.POST("/listings", middlewares.AuthMiddleware(), listingController.CreateListing)
	v1.PUT("/listings", middlewares.AuthMiddleware(), listingController.UpdateListing)
	v1.DELETE("/listings/:id", middlewares.AuthMiddleware(), listingController.DeleteListing)
	v1.GET("/myListings", middlewares.AuthMiddleware(), listingController.GetMyListings)
	v1.GET("/search/last", middlewares.AuthMiddleware(), listingController.GetLastSearch)
	v1.DELETE("/search/last", middlewares.AuthMiddleware(), listingController.ClearLastSearch)

	v1.POST("/bookings", middlewares.AuthMiddleware(), bookingController.CreateBooking)
	v1.PUT("/bookingStatus", middlewares.AuthMiddleware(), bookingController.ChangeBookingStatus)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(), bookingController.GetBookingDetail)
	v1.GET("/myBookings", middlewares.AuthMiddleware(), bookingController.GetMyBookings)
	v1.GET("/ownerBookings", middlewares.AuthMiddleware(), bookingController.GetOwnerBookings)

	v1.POST("/conversations/:userId", middlewares.AuthMiddleware(), chatController.StartConversation)
	v1.GET("/conversations", middlewares.AuthMiddleware(), chatController.GetConversations)
	v1.GET("/conversations/:id/messages", middlewares.AuthMiddleware(), chatController.GetMessages)

	router.GET("/ws/chat/:id", middlewares.AuthMiddleware(), chatController.ChatSocket)
	router.GET("/ws/notifications", middlewares.AuthMiddleware(), chatController.NotificationSocket)

	return bookingService
}
