package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/binduu04/fleet-management-assignment/internal/common/config"
	"github.com/binduu04/fleet-management-assignment/internal/common/db"
	"github.com/binduu04/fleet-management-assignment/internal/common/logger"
	"github.com/binduu04/fleet-management-assignment/internal/maintenance"
	"github.com/binduu04/fleet-management-assignment/internal/user"
	"github.com/binduu04/fleet-management-assignment/internal/vehicle"
)

var (
	configPath = flag.String("config", "configs/fleet-service.json", "配置文件路径")
)

// 演示数据：三类角色各留一个可登录账号，外加若干车辆和工单。
func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	log, err := logger.NewLogger(cfg.Log.Backend, cfg.Log.Level, cfg.Log.Format, "stdout", "")
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

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

	ctx := context.Background()

	// 清空旧数据
	for _, model := range []interface{}{&maintenance.Service{}, &vehicle.Vehicle{}, &user.User{}} {
		if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			log.Fatalf("failed to clear table: %v", err)
		}
	}

	userRepo := user.NewRepo(gormDB)
	userSvc := user.NewService(userRepo)
	vehicleRepo := vehicle.NewRepo(gormDB)
	vehicleSvc := vehicle.NewService(vehicleRepo, userRepo)
	serviceRepo := maintenance.NewRepo(gormDB)

	mkUser := func(name, email, password, role, phone string) *user.User {
		u, err := userSvc.Create(ctx, user.CreateUserInput{
			Name: name, Email: email, Password: password, Role: role, Phone: phone,
		})
		if err != nil {
			log.Fatalf("failed to create user %s: %v", email, err)
		}
		return u
	}

	admin := mkUser("Admin User", "admin@fleet.com", "admin123", "admin", "1234567890")
	tech := mkUser("John Technician", "tech@fleet.com", "tech123", "technician", "1234567891")
	jane := mkUser("Jane User", "user@fleet.com", "user123", "user", "1234567892")
	mkUser("Mike Technician", "mike@fleet.com", "tech123", "technician", "1234567893")
	sarah := mkUser("Sarah User", "sarah@fleet.com", "user123", "user", "1234567894")

	mkVehicle := func(in vehicle.VehicleInput) *vehicle.Vehicle {
		v, err := vehicleSvc.Create(ctx, in)
		if err != nil {
			log.Fatalf("failed to create vehicle %s: %v", in.VehicleNumber, err)
		}
		return v
	}

	camry := mkVehicle(vehicle.VehicleInput{VehicleNumber: "ABC123", Make: "Toyota", Model: "Camry", Year: 2022, Type: "car", Mileage: 15000, AssignedTo: jane.ID})
	f150 := mkVehicle(vehicle.VehicleInput{VehicleNumber: "XYZ789", Make: "Ford", Model: "F-150", Year: 2021, Type: "truck", Mileage: 25000, AssignedTo: sarah.ID})
	crv := mkVehicle(vehicle.VehicleInput{VehicleNumber: "DEF456", Make: "Honda", Model: "CR-V", Year: 2023, Type: "car", Mileage: 8000, AssignedTo: jane.ID})
	sprinter := mkVehicle(vehicle.VehicleInput{VehicleNumber: "GHI789", Make: "Mercedes", Model: "Sprinter", Year: 2020, Type: "van", Mileage: 45000, Status: "maintenance"})

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	completed := date(2026, time.January, 11)

	services := []*maintenance.Service{
		{
			ID: uuid.NewString(), VehicleID: camry.ID, ServiceType: maintenance.TypeOilChange,
			Description: "Regular oil change service", ScheduledDate: date(2026, time.January, 20),
			Status: maintenance.StatusPending, AssignedTechnician: tech.ID, Cost: 50, CreatedBy: admin.ID,
		},
		{
			ID: uuid.NewString(), VehicleID: f150.ID, ServiceType: maintenance.TypeBrake,
			Description: "Brake pad replacement", ScheduledDate: date(2026, time.January, 18),
			Status: maintenance.StatusInProgress, AssignedTechnician: tech.ID, Cost: 200,
			Notes: "Front brake pads need replacement", CreatedBy: admin.ID,
		},
		{
			ID: uuid.NewString(), VehicleID: crv.ID, ServiceType: maintenance.TypeInspection,
			Description: "Annual vehicle inspection", ScheduledDate: date(2026, time.January, 10),
			CompletedDate: &completed, Status: maintenance.StatusCompleted,
			AssignedTechnician: tech.ID, Cost: 100, Notes: "All checks passed", CreatedBy: admin.ID,
		},
		{
			ID: uuid.NewString(), VehicleID: sprinter.ID, ServiceType: maintenance.TypeEngineRepair,
			Description: "Engine diagnostic and repair", ScheduledDate: date(2026, time.January, 15),
			Status: maintenance.StatusInProgress, AssignedTechnician: tech.ID, Cost: 500,
			Notes: "Check engine light diagnosis in progress", CreatedBy: admin.ID,
		},
	}
	for _, s := range services {
		if err := serviceRepo.Create(ctx, s); err != nil {
			log.Fatalf("failed to create service %s: %v", s.Description, err)
		}
	}

	log.Infof("seed complete: admin@fleet.com/admin123 tech@fleet.com/tech123 user@fleet.com/user123")
}
