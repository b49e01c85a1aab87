package database

import (
	"database/sql"
	"fmt"
	"time"

	// Driver pq para PostgreSQL (registro por efecto secundario).
	_ "github.com/lib/pq"
)

// NewPostgresDB inicializa y configura el pool de conexiones con PostgreSQL.
// Devuelve la conexión *sql.DB lista para inyectarse en los repositorios.
// El pool se abre una sola vez en main.go y se cierra en el shutdown: los
// componentes reciben el handle ya construido, nunca estado global.
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("fallo al abrir la conexión con la DB: %w", err)
	}

	// Ping inmediato: valida credenciales y alcance del servidor antes de
	// entregar el pool al resto de la aplicación.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("fallo en el ping inicial a la DB: %w", err)
	}

	// Configuración del pool de conexiones.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}
