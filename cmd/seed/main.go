// Comando seed: crea el usuario admin inicial y, opcionalmente, un lote de
// operaciones de demostración para probar los reportes en local.
//
// Uso:
//
//	go run ./cmd/seed            # solo admin
//	go run ./cmd/seed -demo      # admin + operaciones de ejemplo
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
	"github.com/vitalsalud/ventas-crm-api/internal/infrastructure/postgres"
	"github.com/vitalsalud/ventas-crm-api/pkg/config"
	"github.com/vitalsalud/ventas-crm-api/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "cargar operaciones de demostración")
	adminEmail := flag.String("email", "admin@ventas-crm.local", "email del admin")
	adminPass := flag.String("password", "cambiar-ya-mismo", "password inicial del admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: cfg.App.Name})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	if existing, _ := userRepo.GetByEmail(ctx, *adminEmail); existing != nil {
		log.Info().Str("email", *adminEmail).Msg("admin ya existe, no se recrea")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPass), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        *adminEmail,
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", admin.Email).Msg("admin creado")
	}

	if !*demo {
		return
	}

	opRepo := postgres.NewOperationRepository(pool)
	now := time.Now().In(sales.ZonaVentas)
	hoy := now.Format("2006-01-02")

	demoOps := []*entity.Operation{
		{
			ID:        uuid.New().String(),
			Titular:   "Juan García",
			Status:    entity.StatusIngresado,
			Tipo:      entity.TipoAlta,
			Prepaga:   "Prevención Salud",
			Plan:      "A2",
			Capitas:   entity.Flex("3"),
			FullPrice: entity.Flex("90000"),
			AgentName: "María Pérez",
		},
		{
			ID:               uuid.New().String(),
			Titular:          "Ana López",
			Status:           entity.StatusMedicas,
			Tipo:             entity.TipoAlta,
			Prepaga:          "DoctoRed",
			Plan:             "500",
			CondicionLaboral: "empleado",
			Capitas:          entity.Flex("2"),
			FullPrice:        entity.Flex("120000"),
			Aportes:          entity.Flex("35000"),
			AgentName:        "Carlos Díaz",
		},
		{
			ID:        uuid.New().String(),
			Titular:   "Pedro Sosa",
			Status:    entity.StatusCumplidas,
			Tipo:      entity.TipoPass,
			Origen:    "pass",
			Prepaga:   "AMPF",
			Capitas:   entity.Flex("1"),
			FullPrice: entity.Flex("50000"),
			AgentName: "María Pérez",
		},
	}
	for _, op := range demoOps {
		op.FechaIngreso = hoy
		op.CreatedAt = now
		if err := opRepo.Create(ctx, op); err != nil {
			log.Error().Err(err).Str("id", op.ID).Msg("crear operación demo")
			continue
		}
		log.Info().Str("id", op.ID).Str("titular", op.Titular).Msg("operación demo creada")
	}
}
