// Command apitoken emite un token para un operador de caja.
//
//	JWT_SECRET=... go run ./cmd/apitoken -operator caja-1 -role cajero
package main

import (
	"flag"
	"fmt"

	"github.com/fanfanvithon/ProPymeTransparente/pkg/config"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/jwt"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

func main() {
	operator := flag.String("operator", "", "identificador del operador")
	role := flag.String("role", "cajero", "admin | cajero | lectura")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *operator == "" {
		log.Fatal().Msg("-operator es obligatorio")
	}
	switch *role {
	case "admin", "cajero", "lectura":
	default:
		log.Fatal().Str("role", *role).Msg("rol desconocido")
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *operator, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(token)
}
