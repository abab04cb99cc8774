package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/devfolio/portfolio-web/config"
	"github.com/devfolio/portfolio-web/internal/storage/postgres"
)

const schema = `
create table if not exists projects (
    id          bigserial primary key,
    title       text not null,
    description text not null default ''
);
`

// Applies the projects schema. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("postgres", postgres.DSN(&cfg.Database))
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	log.Println("migrations applied")
}
