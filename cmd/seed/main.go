package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/BruksfildServices01/barber-booking-engine/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking-engine/internal/db"
	"github.com/BruksfildServices01/barber-booking-engine/internal/logging"
	"github.com/BruksfildServices01/barber-booking-engine/internal/models"
	"github.com/BruksfildServices01/barber-booking-engine/internal/seed"
)

func main() {
	barbers := flag.Int("barbers", 3, "number of barbers")
	clients := flag.Int("clients", 20, "number of clients (each gets one voucher)")
	validDays := flag.Int("voucher-days", 30, "voucher validity in days")
	randSeed := flag.Int64("seed", 0, "fixed faker seed (0 = random)")
	flag.Parse()

	if *randSeed != 0 {
		gofakeit.Seed(*randSeed)
	} else {
		gofakeit.Seed(time.Now().UnixNano())
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New("barber-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := dbpkg.NewDB(ctx, cfg, log)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}

	data := seed.Generate(*barbers, *clients, time.Duration(*validDays)*24*time.Hour, time.Now())
	if err := data.Persist(ctx, db); err != nil {
		log.Error("persist seed", "err", err)
		os.Exit(1)
	}

	ownerToken, err := seed.DevToken(cfg.JWTSecret, data.Owner.ID, data.Shop.ID, models.RoleOwner, 24*time.Hour)
	if err != nil {
		log.Error("sign token", "err", err)
		os.Exit(1)
	}

	fmt.Printf("barbershop %q (slug %s)\n", data.Shop.Name, data.Shop.Slug)
	fmt.Printf("owner %d token: %s\n", data.Owner.ID, ownerToken)
	for _, b := range data.Barbers {
		fmt.Printf("barber %d %s\n", b.ID, b.Name)
	}
	for _, p := range data.Products {
		fmt.Printf("product %d %s (%d min)\n", p.ID, p.Name, p.DurationMin)
	}
	fmt.Printf("%d clients, %d vouchers\n", len(data.Clients), len(data.Vouchers))
}
