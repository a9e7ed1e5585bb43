package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/binduu04/fleet-management-assignment/internal/common/config"
	"github.com/binduu04/fleet-management-assignment/internal/common/db"
	"github.com/binduu04/fleet-management-assignment/internal/common/logger"
	"github.com/binduu04/fleet-management-assignment/internal/common/server"
	"github.com/binduu04/fleet-management-assignment/internal/common/tracing"
	"github.com/binduu04/fleet-management-assignment/internal/maintenance"
	"github.com/binduu04/fleet-management-assignment/internal/user"
	"github.com/binduu04/fleet-management-assignment/internal/vehicle"
)

var (
	configPath = flag.String("config", "configs/fleet-service.json", "配置文件路径")
)

func main() {
	flag.Parse()

	// 加载配置：优先 Consul KV，否则本地文件
	cfg, err := loadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Backend, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 初始化数据库
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(&user.User{}, &vehicle.Vehicle{}, &maintenance.Service{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	// 组装领域服务
	userRepo := user.NewRepo(gormDB)
	userSvc := user.NewService(userRepo)
	vehicleRepo := vehicle.NewRepo(gormDB)
	vehicleSvc := vehicle.NewService(vehicleRepo, userRepo)
	serviceRepo := maintenance.NewRepo(gormDB)
	serviceMgr := maintenance.NewManager(serviceRepo, vehicleRepo, userRepo)

	userHandler := user.NewHandler(userSvc, cfg.Auth)
	vehicleHandler := vehicle.NewHandler(vehicleSvc)
	serviceHandler := maintenance.NewHandler(serviceMgr)

	// 启动统一的 HTTP 服务模板
	if err := server.RunHTTPServer(cfg, log, func(r *gin.Engine) {
		userHandler.RegisterRoutes(r)
		vehicleHandler.RegisterRoutes(r)
		serviceHandler.RegisterRoutes(r)
	}); err != nil {
		log.Fatalf("fleet-service exited with error: %v", err)
	}
}

func loadConfig() (*config.Config, error) {
	if key := os.Getenv("CONSUL_CONFIG_KEY"); key != "" {
		host := os.Getenv("CONSUL_HOST")
		if host == "" {
			host = "localhost"
		}
		port := 8500
		if p := os.Getenv("CONSUL_PORT"); p != "" {
			if n, err := strconv.Atoi(p); err == nil {
				port = n
			}
		}
		return config.LoadConfigFromConsulKV(host, port, key)
	}
	return config.LoadConfig(*configPath)
}
