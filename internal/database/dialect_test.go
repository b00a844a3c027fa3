package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{Path: "./test.db"})
		expected := "./test.db"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN adds parseTime", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{URL: "user:pass@tcp(localhost)/app"})
		expected := "user:pass@tcp(localhost)/app?parseTime=true"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN appends to existing params", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{URL: "user:pass@tcp(localhost)/app?charset=utf8"})
		expected := "user:pass@tcp(localhost)/app?charset=utf8&parseTime=true"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM profiles WHERE id = ?",
			expected: "SELECT * FROM profiles WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM profiles WHERE id = ?",
			expected: "SELECT * FROM profiles WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO streaks (profile_id, current_streak) VALUES (?, ?)",
			expected: "INSERT INTO streaks (profile_id, current_streak) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE profiles SET name = ?, theme = ? WHERE id = ?",
			expected: "UPDATE profiles SET name = ?, theme = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertQuery(t *testing.T) {
	keyColumns := []string{"profile_id"}
	updateColumns := []string{"current_streak", "longest_streak"}

	t.Run("SQLite", func(t *testing.T) {
		query := NewSQLiteDialect().UpsertQuery("streaks", keyColumns, updateColumns)
		expected := "INSERT INTO streaks (profile_id, current_streak, longest_streak)" +
			" VALUES (?, ?, ?)" +
			" ON CONFLICT (profile_id)" +
			" DO UPDATE SET current_streak = excluded.current_streak, longest_streak = excluded.longest_streak"
		if query != expected {
			t.Errorf("UpsertQuery() = %v, want %v", query, expected)
		}
	})

	t.Run("PostgreSQL matches SQLite form", func(t *testing.T) {
		sqlite := NewSQLiteDialect().UpsertQuery("streaks", keyColumns, updateColumns)
		postgres := NewPostgresDialect().UpsertQuery("streaks", keyColumns, updateColumns)
		if sqlite != postgres {
			t.Errorf("PostgreSQL upsert = %v, want same ON CONFLICT form as SQLite", postgres)
		}
	})

	t.Run("MySQL", func(t *testing.T) {
		query := NewMySQLDialect().UpsertQuery("streaks", keyColumns, updateColumns)
		expected := "INSERT INTO streaks (profile_id, current_streak, longest_streak)" +
			" VALUES (?, ?, ?)" +
			" ON DUPLICATE KEY UPDATE current_streak = VALUES(current_streak), longest_streak = VALUES(longest_streak)"
		if query != expected {
			t.Errorf("UpsertQuery() = %v, want %v", query, expected)
		}
	})

	t.Run("composite key", func(t *testing.T) {
		query := NewSQLiteDialect().UpsertQuery("fact_stats", []string{"profile_id", "fact"}, []string{"ease_factor"})
		expected := "INSERT INTO fact_stats (profile_id, fact, ease_factor)" +
			" VALUES (?, ?, ?)" +
			" ON CONFLICT (profile_id, fact)" +
			" DO UPDATE SET ease_factor = excluded.ease_factor"
		if query != expected {
			t.Errorf("UpsertQuery() = %v, want %v", query, expected)
		}
	})
}
