package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solireserve/infras/otel/mocks"
	"solireserve/shared/dto"
	"solireserve/shared/model"
)

type bookedRoom struct {
	ID        string `db:"id"`
	HotelID   string `db:"hotel_id"`
	Number    string `db:"numero"`
	HotelName string `db:"hotel_nom" table:"hotels" column:"nom"`
	Scratch   string `db:"-"`
	Note      string
	model.Metadata
}

func (bookedRoom) GetJoinQuery() string {
	return "LEFT JOIN hotels ON hotels.id = rooms.hotel_id"
}

type plainOperator struct {
	ID   string `db:"id"`
	Name string `db:"nom"`
}

func TestNewRepository(t *testing.T) {
	repo := NewRepository[bookedRoom]("room", "rooms", "id", nil, mocks.NewOtel())

	assert.Equal(t, "LEFT JOIN hotels ON hotels.id = rooms.hotel_id", repo.join)
	assert.Equal(t,
		"INSERT INTO rooms (id, hotel_id, numero, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :hotel_id, :numero, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery)
	assert.Equal(t,
		"rooms.id, rooms.hotel_id, rooms.numero, hotels.nom AS hotel_nom, "+
			"rooms.created_at, rooms.modified_at, rooms.created_by, rooms.modified_by",
		repo.selectList(nil))
	assert.Equal(t, "rooms.id, hotels.nom AS hotel_nom", repo.selectList([]string{"id", "hotel_nom"}))

	plain := NewRepository[plainOperator]("operator", "operators", "id", nil, mocks.NewOtel())
	assert.Empty(t, plain.join)
}

func TestOrdering(t *testing.T) {
	repo := NewRepository[bookedRoom]("room", "rooms", "id", nil, mocks.NewOtel())

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected string
	}{
		{name: "no sort", params: dto.QueryParams{}, expected: "rooms.id"},
		{name: "own column", params: dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirDesc}, expected: "rooms.created_at DESC, rooms.id"},
		{name: "joined alias", params: dto.QueryParams{SortBy: "hotel_nom", SortDir: dto.SortDirAsc}, expected: "hotels.nom ASC, rooms.id"},
		{name: "primary key", params: dto.QueryParams{SortBy: "id", SortDir: dto.SortDirAsc}, expected: "rooms.id ASC"},
		{name: "unknown column is ignored", params: dto.QueryParams{SortBy: "1; DROP TABLE rooms", SortDir: dto.SortDirAsc}, expected: "rooms.id"},
		{name: "unknown direction", params: dto.QueryParams{SortBy: "numero", SortDir: "sideways"}, expected: "rooms.numero DESC, rooms.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repo.ordering(tt.params))
		})
	}
}

func TestWhere(t *testing.T) {
	repo := NewRepository[plainOperator]("operator", "operators", "id", nil, mocks.NewOtel())

	t.Run("empty filter is refused", func(t *testing.T) {
		var filter dto.FilterGroup
		filter.AddEqual("operators", "id", "")

		_, _, err := repo.where(filter)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errRequiredFilter))
	})

	t.Run("rendered", func(t *testing.T) {
		var filter dto.FilterGroup
		filter.AddEqual("operators", "id", "op-1")

		where, args, err := repo.where(filter)

		require.NoError(t, err)
		assert.Equal(t, "WHERE (operators.id = :operators_id)", where)
		assert.Equal(t, map[string]any{"operators_id": "op-1"}, args)
	})
}

func TestAssignments(t *testing.T) {
	set := assignments(map[string]any{"statut": "en_cours", "modified_by": "u1", "modified_at": nil})

	assert.Equal(t, []string{"modified_at = :modified_at", "modified_by = :modified_by", "statut = :statut"}, set)
}
