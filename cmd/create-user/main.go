package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"evidencias_app_go/config"
	"evidencias_app_go/db"
	"evidencias_app_go/models"
	"evidencias_app_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Usuario{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Crear nuevo usuario ===")
	fmt.Println()

	fmt.Print("Nombre: ")
	nombre, _ := reader.ReadString('\n')

	fmt.Print("Usuario: ")
	usuario, _ := reader.ReadString('\n')

	fmt.Print("Contraseña: ")
	contrasena, _ := reader.ReadString('\n')

	fmt.Print("Rol (Admin/Tecnico/Supervisor) [Admin]: ")
	rol, _ := reader.ReadString('\n')
	rol = strings.TrimSpace(rol)
	if rol == "" {
		rol = models.RolAdmin
	}

	created, err := services.CreateUsuario(db.DB, &services.UsuarioCreate{
		Nombre:     strings.TrimSpace(nombre),
		Usuario:    strings.TrimSpace(usuario),
		Contrasena: strings.TrimSpace(contrasena),
		Rol:        rol,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ Usuario creado exitosamente")
	fmt.Printf("  ID: %d\n", created.ID)
	fmt.Printf("  Nombre: %s\n", created.Nombre)
	fmt.Printf("  Usuario: %s\n", created.Usuario)
	fmt.Printf("  Rol: %s\n", created.Rol)
}
