package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/univloop/univloop-api/config"
)

type seedSubject struct {
	name        string
	description string
	icon        string
	color       string
}

// Base subject taxonomy, inserted once. Re-running the seed leaves existing
// rows untouched.
var baseSubjects = []seedSubject{
	{"Informatique", "Programmation, algorithmes, bases de données", "💻", "#3B82F6"},
	{"Mathématiques", "Algèbre, analyse, probabilités", "📐", "#8B5CF6"},
	{"Physique", "Mécanique, électromagnétisme, thermodynamique", "⚛️", "#EF4444"},
	{"Chimie", "Chimie organique, inorganique, analytique", "🧪", "#10B981"},
	{"Biologie", "Biologie cellulaire, génétique, écologie", "🧬", "#22C55E"},
	{"Économie", "Microéconomie, macroéconomie, finance", "📊", "#F59E0B"},
	{"Droit", "Droit civil, pénal, constitutionnel", "⚖️", "#6366F1"},
	{"Langues", "Anglais, espagnol, allemand et autres langues", "🗣️", "#EC4899"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	inserted := 0
	for _, s := range baseSubjects {
		res, err := db.Exec(`
			INSERT INTO subjects (id, name, description, icon, color, is_custom, created_at)
			VALUES ($1, $2, $3, $4, $5, false, now())
			ON CONFLICT (name) DO NOTHING
		`, uuid.NewString(), s.name, s.description, s.icon, s.color)
		if err != nil {
			log.Fatalf("failed to seed subject %q: %v", s.name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	fmt.Printf("seeded subjects: %d inserted, %d already present\n", inserted, len(baseSubjects)-inserted)
}
