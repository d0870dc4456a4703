package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/angple/arena-backend/internal/config"
	"github.com/angple/arena-backend/internal/database"
	"github.com/angple/arena-backend/internal/migration"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", config.Path(), "config file path")
	verify := flag.Bool("verify", false, "only report table presence and row counts")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if _, err := config.LoadDotEnv(); err != nil {
		log.Printf("dotenv: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}
	db, eventDB, err := database.OpenStores(cfg, logLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db, eventDB)

	if !*verify {
		if err := migration.Run(db, eventDB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed")
	}

	status, err := migration.Status(db, eventDB)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tTABLE\tEXISTS\tROWS")
	missing := 0
	for _, st := range status {
		if !st.Exists {
			missing++
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%d\n", st.Store, st.Table, st.Exists, st.Rows)
	}
	_ = w.Flush()

	if missing > 0 {
		log.Fatalf("%d table(s) missing", missing)
	}
}
