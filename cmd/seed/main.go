package main

import (
	"log"

	"github.com/boxflow/backend/internal/db"
	"github.com/boxflow/backend/internal/models"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db.Connect()
	db.AutoMigrate()

	seedUsers()
	seedMachines()

	log.Println("✅ Seeding completed")
}

func seedUsers() {
	users := []struct {
		email     string
		password  string
		firstName string
		lastName  string
		role      models.UserRole
	}{
		{"admin@boxflow.local", "admin123", "Admin", "User", models.RoleAdmin},
		{"planner@boxflow.local", "planner123", "Production", "Planner", models.RolePlanner},
		{"operator@boxflow.local", "operator123", "Floor", "Operator", models.RoleOperator},
	}

	for _, u := range users {
		var existing models.User
		if err := db.DB.Where("email = ?", u.email).First(&existing).Error; err == nil {
			log.Printf("⚠️  User already exists: %s", u.email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", u.email, err)
			continue
		}

		user := models.User{
			Email:     u.email,
			Password:  string(hashed),
			FirstName: u.firstName,
			LastName:  u.lastName,
			Role:      u.role,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", u.email, err)
			continue
		}
		log.Printf("✅ Created user: %s (%s)", user.Email, user.Role)
	}
}

func seedMachines() {
	machines := []models.Machine{
		{Unit: "Unit 1", MachineCode: "COR-01", MachineType: "Corrugation", Description: "5-ply corrugation line", Capacity: 50000},
		{Unit: "Unit 1", MachineCode: "COR-02", MachineType: "Corrugation", Description: "3-ply corrugation line", Capacity: 35000},
		{Unit: "Unit 1", MachineCode: "PRN-01", MachineType: "Printing", Description: "4-colour flexo printer", Capacity: 40000},
		{Unit: "Unit 2", MachineCode: "FLM-01", MachineType: "FluteLamination", Description: "Flute laminator", Capacity: 30000},
		{Unit: "Unit 2", MachineCode: "PUN-01", MachineType: "Punching", Description: "Rotary die punch", Capacity: 45000},
		{Unit: "Unit 2", MachineCode: "FLP-01", MachineType: "FlapPasting", Description: "Flap pasting machine", Capacity: 60000},
	}

	for _, m := range machines {
		var existing models.Machine
		if err := db.DB.Where("machine_code = ?", m.MachineCode).First(&existing).Error; err == nil {
			log.Printf("⚠️  Machine already exists: %s", m.MachineCode)
			continue
		}

		m.ID = uuid.NewString()
		m.RemainingCapacity = m.Capacity
		m.Status = models.MachineAvailable
		m.IsActive = true
		if err := db.DB.Create(&m).Error; err != nil {
			log.Printf("Error creating machine %s: %v", m.MachineCode, err)
			continue
		}
		log.Printf("✅ Created machine: %s (%s)", m.MachineCode, m.MachineType)
	}
}
