package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/controllers"
	"github.com/vnkhanh/healthquiz-server/recommend"
	"github.com/vnkhanh/healthquiz-server/routes"
)

func main() {
	// .env chỉ dùng khi chạy local, deploy thì biến môi trường có sẵn
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	// Kết nối DB + AutoMigrate
	db := config.ConnectDB()

	// Recommender khởi tạo một lần, giữ DB handle tường minh
	controllers.Recommender = recommend.NewService(db)

	// Tạo instance router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origin == "http://localhost:5173" || origin == "https://quiz.vnkhanh.dev"
		},
		AllowMethods:           []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:           []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:          []string{"Content-Length"},
		AllowCredentials:       true,
		MaxAge:                 12 * time.Hour,
		AllowWildcard:          true,
		AllowBrowserExtensions: true,
	}))

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Health quiz server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	// Setup routes khác
	routes.SetupRoutes(r)

	// Lấy PORT từ biến môi trường
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s\n", port)
	r.Run(":" + port)
}
