// cmd/seeduser/main.go — crea o actualiza el usuario administrador inicial.
// Uso: go run cmd/seeduser/main.go
package main

import (
	"fmt"
	stdlog "log"

	"minegocio/internal/config"
	"minegocio/internal/infra"
	"minegocio/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config error: %v", err)
	}

	db, err := infra.NewDatabase(cfg)
	if err != nil {
		stdlog.Fatalf("db connect error: %v", err)
	}

	username := "admin"
	password := "cambiar123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		stdlog.Fatalf("bcrypt error: %v", err)
	}

	user := model.Usuario{
		Username:     username,
		Nombre:       "Administrador",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nombre", "password_hash", "rol", "activo",
		}),
	}).Create(&user).Error
	if err != nil {
		stdlog.Fatalf("insert error: %v", err)
	}
	fmt.Printf("Usuario %q creado/actualizado con password %q\n", username, password)
}
