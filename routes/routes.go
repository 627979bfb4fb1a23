package routes

import (
	"edesign/controllers"
	"edesign/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/auth/register", controllers.Register)
		api.POST("/auth/login", controllers.Login)
		api.POST("/auth/send-otp", controllers.SendOTP)
		api.POST("/auth/verify-otp", controllers.VerifyOTP)
		api.POST("/auth/logout", controllers.Logout)
		api.POST("/admin/login", controllers.AdminLogin)

		api.GET("/products", controllers.GetProductsPublic)

		api.POST("/orders/create", controllers.CreateOrder)
		api.GET("/orders/:orderId", controllers.GetOrderByID)
		api.PATCH("/orders/:orderId", controllers.UpdateShippingAddress)
		api.POST("/orders/notify-success", controllers.NotifySuccess)

		api.POST("/payment/create", controllers.CreatePayment)
		api.POST("/webhooks/xendit", controllers.XenditWebhook)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.GET("/products", controllers.GetProductsAdmin)
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)

			admin.GET("/orders", controllers.GetOrdersAdmin)
			admin.GET("/orders/:id", controllers.GetOrderByIDAdmin)
			admin.GET("/export/orders", controllers.ExportOrdersExcel)
			admin.GET("/analytics/summary", controllers.GetAnalyticsSummary)
		}
	}
}
