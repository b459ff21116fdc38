package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Qwerty-Alisha/ShopEase/controllers"
	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/models"
)

// Controllers bundles every handler group the router wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Products *controllers.ProductController
	Category *controllers.CategoryController
	Brands   *controllers.BrandController
	Carts    *controllers.CartController
	Orders   *controllers.OrderController
	Payments *controllers.PaymentController
	Checkout *controllers.CheckoutController
}

// Register wires all routes. Products, categories, brands and auth are
// public; users, cart, orders and the payment/checkout flow sit behind the
// authorization gate. The webhook is public by design and is verified by its
// signature instead.
func Register(r *gin.Engine, auth *middleware.Authenticator, c Controllers) {
	// Stripe webhook (no auth; signature-verified)
	r.POST("/webhook", c.Payments.StripeWebhook)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit())
	{
		authGroup.POST("/signup", c.Auth.Register)
		authGroup.POST("/login", c.Auth.Login)
		authGroup.POST("/logout", c.Auth.Logout)
		authGroup.GET("/check", auth.RequireAuth(), c.Auth.Check)
	}

	products := api.Group("/products")
	{
		products.GET("", c.Products.GetProducts)
		products.GET("/:id", c.Products.GetProductByID)
		products.POST("", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), c.Products.CreateProduct)
		products.PATCH("/:id", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), c.Products.UpdateProduct)
		products.DELETE("/:id", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), c.Products.DeleteProduct)
		products.GET("/presign-upload", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), c.Products.GetPresignUpload)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", c.Category.GetCategories)
		categories.POST("", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), c.Category.CreateCategory)
	}

	brands := api.Group("/brands")
	{
		brands.GET("", c.Brands.GetBrands)
		brands.POST("", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin), c.Brands.CreateBrand)
	}

	users := api.Group("/users", auth.RequireAuth())
	{
		users.GET("/own", c.Users.GetProfile)
		users.PATCH("/own", c.Users.UpdateProfile)
	}

	cart := api.Group("/cart", auth.RequireAuth())
	{
		cart.GET("", c.Carts.GetCart)
		cart.POST("", c.Carts.AddItem)
		cart.PATCH("/:product_id", c.Carts.UpdateItem)
		cart.DELETE("/:product_id", c.Carts.RemoveItem)
		cart.DELETE("", c.Carts.ClearCart)
	}

	orders := api.Group("/orders", auth.RequireAuth())
	{
		orders.POST("", c.Orders.CreateOrder)
		orders.GET("/own", c.Orders.ListOrders)
		orders.GET("/:id", c.Orders.GetOrder)
		orders.GET("", auth.RequireRole(models.RoleAdmin), c.Orders.ListAllOrders)
		orders.PATCH("/:id", auth.RequireRole(models.RoleAdmin), c.Orders.UpdateOrderStatus)
	}

	api.POST("/create-payment-intent", auth.RequireAuth(), c.Payments.CreatePaymentIntent)

	checkout := api.Group("/checkout", auth.RequireAuth())
	{
		checkout.POST("/start", c.Checkout.Start)
		checkout.POST("/submit", c.Checkout.Submit)
		checkout.POST("/complete", c.Checkout.Complete)
		checkout.GET("/status", c.Checkout.Status)
	}
}
