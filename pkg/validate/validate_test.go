package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molkars/aio/pkg/qql"
	"github.com/Molkars/aio/pkg/types"
)

func parseFile(t *testing.T, src string) *qql.File {
	t.Helper()
	file, err := qql.Parse(src)
	require.NoError(t, err)
	return file
}

func validateSource(t *testing.T, sources ...string) (*Registry, error) {
	t.Helper()
	files := make([]*qql.File, 0, len(sources))
	for _, src := range sources {
		files = append(files, parseFile(t, src))
	}
	return Validate(types.NewStore(), files)
}

func TestValidateModels(t *testing.T) {
	registry, err := validateSource(t, `
		model User {
			id: UUID,
			name: String(64)?,
			secret: Encrypted,
			created_at: DateTime,
		}
	`)
	require.NoError(t, err)
	require.Equal(t, 1, registry.Len())

	user, ok := registry.Get("User")
	require.True(t, ok)
	require.Len(t, user.Fields, 4)

	name, ok := user.Field("name")
	require.True(t, ok)
	assert.Equal(t, types.KindString, name.Type.Kind())
	require.NotNil(t, name.Arg)
	assert.Equal(t, uint64(64), *name.Arg)
	assert.True(t, name.Optional)

	secret, ok := user.Field("secret")
	require.True(t, ok)
	assert.Equal(t, "Encrypted", secret.Type.Name())
	assert.Equal(t, types.KindString, secret.Type.Kind())
}

func TestValidateDuplicateField(t *testing.T) {
	_, err := validateSource(t, `model User { id: UUID, id: String }`)
	require.Error(t, err)

	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "User", dup.Model)
	assert.Equal(t, "id", dup.Field)
	assert.Equal(t, `model User has a duplicated field "id"`, err.Error())
}

func TestValidateUnknownFieldType(t *testing.T) {
	_, err := validateSource(t, `model User { id: Snowflake }`)
	require.Error(t, err)

	var unknown *UnknownFieldTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, `User.id has unknown type "Snowflake"`, err.Error())
}

func TestValidateDuplicateQueryArgument(t *testing.T) {
	_, err := validateSource(t, `
		model User { id: UUID }
		query Q(a, a) { select one User(id) }
	`)
	require.Error(t, err)

	var dup *DuplicateQueryArgumentError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, `query Q has a duplicate argument "a"`, err.Error())
}

func TestValidatePrincipalModelResolution(t *testing.T) {
	// One selector, so the unqualified "id" resolves against User.
	_, err := validateSource(t, `
		model User { id: UUID, name: String }
		query Q() { select one User(id, name) where id == 5 }
	`)
	require.NoError(t, err)
}

func TestValidatePrincipalModelMissingField(t *testing.T) {
	_, err := validateSource(t, `
		model User { name: String }
		query Q() { select one User(name) where id == 5 }
	`)
	require.Error(t, err)

	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, `query Q uses User.id, however User has no field "id"`, err.Error())
}

func TestValidateAmbiguousField(t *testing.T) {
	// Two selectors, so unqualified fields have no principal model.
	_, err := validateSource(t, `
		model User { id: UUID }
		model Post { id: UUID }
		query Q() { select all User(id), Post(id) where id == 5 }
	`)
	require.Error(t, err)

	var ambiguous *AmbiguousQueryFieldError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "query Q uses an ambiguous field id", err.Error())
}

func TestValidateQualifiedFieldWithTwoSelectors(t *testing.T) {
	_, err := validateSource(t, `
		model User { id: UUID }
		model Post { id: UUID, author: UUID }
		query Q() { select all User(id), Post(id) where Post.author == 5 }
	`)
	require.NoError(t, err)
}

func TestValidateUnknownModel(t *testing.T) {
	_, err := validateSource(t, `
		model User { id: UUID }
		query Q() { select one User(id) where Account.id == 5 }
	`)
	require.Error(t, err)

	var unknown *UnknownModelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, `query Q uses Account.id, however "Account" is not a model`, err.Error())
}

func TestValidateUnknownVariable(t *testing.T) {
	_, err := validateSource(t, `
		model User { id: UUID }
		query Q(a) { select one User(id) where id == #b }
	`)
	require.Error(t, err)

	var unknown *UnknownQueryVariableError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Q", unknown.Query)
	assert.Equal(t, "b", unknown.Variable)
	assert.Equal(t, `query Q uses unknown variable "b"`, err.Error())
}

func TestValidateQuantifierExpression(t *testing.T) {
	_, err := validateSource(t, `
		model User { id: UUID }
		query Q(n) { select #n + 1 User(id) }
	`)
	require.NoError(t, err)

	_, err = validateSource(t, `
		model User { id: UUID }
		query Q() { select #n + 1 User(id) }
	`)
	require.Error(t, err)
	var unknown *UnknownQueryVariableError
	require.ErrorAs(t, err, &unknown)
}

func TestValidateCrossFileOrder(t *testing.T) {
	// Queries in an earlier file may reference models declared in a
	// later file: all models register before any query is checked.
	_, err := validateSource(t,
		`query Q() { select one User(id) where id == 5 }`,
		`model User { id: UUID }`,
	)
	require.NoError(t, err)
}

func TestValidateRedeclaredModelLastWriteWins(t *testing.T) {
	registry, err := validateSource(t,
		`model User { id: UUID }`,
		`model User { id: UUID, name: String }`,
	)
	require.NoError(t, err)

	user, ok := registry.Get("User")
	require.True(t, ok)
	assert.Len(t, user.Fields, 2)
	assert.True(t, user.HasField("name"))
}

func TestRegistryModelsSorted(t *testing.T) {
	registry, err := validateSource(t, `
		model Zeta { id: UUID }
		model Alpha { id: UUID }
	`)
	require.NoError(t, err)

	models := registry.Models()
	require.Len(t, models, 2)
	assert.Equal(t, "Alpha", models[0].Name)
	assert.Equal(t, "Zeta", models[1].Name)
}
