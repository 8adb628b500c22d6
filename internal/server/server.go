package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"workout-buddy/internal/config"
	"workout-buddy/internal/database"
	authhandler "workout-buddy/internal/handler/auth"
	exercisehandler "workout-buddy/internal/handler/exercise"
	"workout-buddy/internal/handler/health"
	"workout-buddy/internal/handler/middleware"
	perfhandler "workout-buddy/internal/handler/performance"
	workouthandler "workout-buddy/internal/handler/workout"
	pgrepo "workout-buddy/internal/repository/postgres"
	perfuc "workout-buddy/internal/usecase/performance"
	useruc "workout-buddy/internal/usecase/user"
	workoutuc "workout-buddy/internal/usecase/workout"
	"workout-buddy/pkg/logger"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *database.DB
	cfg        *config.Config
	log        logger.Logger

	authHandler        *authhandler.Handler
	workoutHandler     *workouthandler.Handler
	exerciseHandler    *exercisehandler.Handler
	performanceHandler *perfhandler.Handler
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config, db *database.DB) *Server {
	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		log:    logger.New(cfg.AppEnv),
	}

	// Инициализируем зависимости доменов один раз
	gormDB := db.DB
	userRepo := pgrepo.NewUserRepository(gormDB)
	workoutRepo := pgrepo.NewWorkoutRepository(gormDB)
	exerciseRepo := pgrepo.NewExerciseRepository(gormDB)
	performanceRepo := pgrepo.NewPerformanceRepository(gormDB)

	userService := useruc.NewService(userRepo)
	workoutService := workoutuc.NewService(workoutRepo, exerciseRepo)
	performanceService := perfuc.NewService(performanceRepo)

	s.authHandler = authhandler.NewHandler(userService)
	s.workoutHandler = workouthandler.NewHandler(workoutService)
	s.exerciseHandler = exercisehandler.NewHandler(workoutService)
	s.performanceHandler = perfhandler.NewHandler(performanceService)

	// Настраиваем middleware и роуты
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery middleware - должен быть первым для перехвата паник
	s.router.Use(middleware.Recovery(s.log))

	// RequestID middleware - идентификатор запроса для связи логов с клиентом
	s.router.Use(middleware.RequestID())

	// Logger middleware - логирование всех запросов
	s.router.Use(middleware.LoggerStructured(s.log))

	// CORS middleware - настройка CORS
	s.router.Use(middleware.CORS(&s.cfg.CORS))
}

// setupRoutes настраивает маршруты приложения.
// Пути совпадают с контрактом мобильного клиента один в один, без префикса версии.
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()
	s.setupAuthRoutes()
	s.setupWorkoutRoutes()
	s.setupPerformanceRoutes()
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	healthHandler := health.NewHandler(s.db, s.cfg.AppEnv)
	// GET /health — базовый health-check сервера (жив ли процесс).
	s.router.GET("/health", healthHandler.Health)
	// GET /health/db — проверка доступности базы данных.
	s.router.GET("/health/db", healthHandler.HealthDB)
}

// setupAuthRoutes настраивает эндпоинты регистрации и входа.
func (s *Server) setupAuthRoutes() {
	// POST /signup — регистрация нового пользователя по username/email/паролю.
	s.router.POST("/signup", s.authHandler.Signup)
	// POST /login — аутентификация по username/паролю, возвращает userId.
	s.router.POST("/login", s.authHandler.Login)
}

// setupWorkoutRoutes настраивает эндпоинты тренировок и каталога упражнений.
func (s *Server) setupWorkoutRoutes() {
	workouts := s.router.Group("/workouts")
	{
		// GET /workouts?user_id= — список тренировок пользователя.
		workouts.GET("", s.workoutHandler.List)
		// POST /workouts — создать тренировку.
		workouts.POST("", s.workoutHandler.Create)
		// GET /workouts/:workout_id — представление тренировки для клиента.
		workouts.GET("/:workout_id", s.workoutHandler.Get)
		// POST /workouts/:workout_id/exercises — добавить упражнение с планом подходов.
		workouts.POST("/:workout_id/exercises", s.workoutHandler.AddExercise)
		// DELETE /workouts/:workout_id/exercises/:workout_exercise_id — удалить упражнение
		// с каскадной очисткой подходов и истории результатов.
		workouts.DELETE("/:workout_id/exercises/:workout_exercise_id", s.workoutHandler.RemoveExercise)
	}

	// GET /exercises — каталог упражнений, отсортированный по названию.
	s.router.GET("/exercises", s.exerciseHandler.List)
}

// setupPerformanceRoutes настраивает эндпоинты учёта результатов.
func (s *Server) setupPerformanceRoutes() {
	// POST /performance — создать запись результата (первая отметка подхода).
	s.router.POST("/performance", s.performanceHandler.LogSet)
	// PUT /performance/:performance_id — переключить флаг выполнения.
	s.router.PUT("/performance/:performance_id", s.performanceHandler.SetCompletion)
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения сигналов ОС
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Канал для ошибок запуска сервера
	serverErr := make(chan error, 1)

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("HTTP сервер запущен на %s", address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	// Ожидаем либо сигнал для graceful shutdown, либо ошибку запуска
	select {
	case err := <-serverErr:
		// Если сервер не смог запуститься, пытаемся корректно остановить
		log.Printf("Ошибка запуска сервера: %v", err)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал %v для остановки сервера...", sig)
	}

	// Создаем контекст с таймаутом для graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Останавливаем сервер
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Println("HTTP сервер успешно остановлен")
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
