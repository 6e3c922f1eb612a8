package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molkars/aio/pkg/conf"
	"github.com/Molkars/aio/pkg/qql"
	"github.com/Molkars/aio/pkg/types"
	"github.com/Molkars/aio/pkg/validate"
)

func validatedModel(t *testing.T, src string) *validate.Model {
	t.Helper()
	file, err := qql.Parse(src)
	require.NoError(t, err)
	registry, err := validate.Validate(types.NewStore(), []*qql.File{file})
	require.NoError(t, err)
	models := registry.Models()
	require.Len(t, models, 1)
	return models[0]
}

func TestCreateTableDDL(t *testing.T) {
	model := validatedModel(t, `
		model User {
			id: UUID,
			name: String(64),
			bio: String?,
			created_at: DateTime,
		}
	`)

	ddl, err := CreateTableDDL(model)
	require.NoError(t, err)
	assert.Equal(t, `create table if not exists "User" (
  id UUID DEFAULT gen_random_uuid() NOT NULL,
  name varchar(64) NOT NULL,
  bio varchar,
  created_at timestamp NOT NULL
)`, ddl)
}

func TestCreateTableDDLEncrypted(t *testing.T) {
	// Encrypted is stored as a string column.
	model := validatedModel(t, `model Secret { value: Encrypted(128) }`)

	ddl, err := CreateTableDDL(model)
	require.NoError(t, err)
	assert.Contains(t, ddl, "value varchar(128) NOT NULL")
}

func TestDropTableDDL(t *testing.T) {
	model := validatedModel(t, `model User { id: UUID }`)
	assert.Equal(t, `drop table if exists "User";`, DropTableDDL(model))
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "defaults",
			cfg:  Config{Database: "app"},
			want: "host=localhost port=5432 dbname=app sslmode=disable",
		},
		{
			name: "full",
			cfg: Config{
				Host:     "db.internal",
				Port:     5433,
				User:     "aio",
				Password: "hunter2",
				Database: "app",
				SSLMode:  "require",
			},
			want: "host=db.internal port=5433 dbname=app sslmode=require user=aio password=hunter2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestConfigFromProject(t *testing.T) {
	t.Setenv("AIO_TEST_PGPASS", "sekrit")

	group, err := conf.Parse(conf.NewContext(), `
		database {
			host "localhost"
			port 5433
			user "aio"
			password Env("AIO_TEST_PGPASS")
			database "app"
		}
	`)
	require.NoError(t, err)
	db, err := group.GetGroup("database")
	require.NoError(t, err)

	cfg, err := ConfigFromProject(db)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Host:     "localhost",
		Port:     5433,
		User:     "aio",
		Password: "sekrit",
		Database: "app",
	}, cfg)
}

func TestConfigFromProjectMissingDatabase(t *testing.T) {
	group, err := conf.Parse(conf.NewContext(), `database { host "localhost" }`)
	require.NoError(t, err)
	db, err := group.GetGroup("database")
	require.NoError(t, err)

	_, err = ConfigFromProject(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database config")
}
