package room

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solireserve/internal/domains/room/model"
	"solireserve/shared/failure"
)

func multipartRequest(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if image != nil {
		part, err := writer.CreateFormFile(model.FieldImage, "chambre.png")
		require.NoError(t, err)

		_, err = part.Write(image)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/rooms", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestParseRoomForm(t *testing.T) {
	t.Run("full create form", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{
			model.FieldHotelID:       "4b0f8a52-4c1e-4d5e-9a43-4f7e9c0e1a11",
			model.FieldNumber:        "12",
			model.FieldRoomType:      "adaptee",
			model.FieldCapacity:      "3",
			model.FieldStandardPrice: "64,90",
			model.FieldActive:        "false",
		}, []byte("\x89PNG\r\n\x1a\n"))

		form, err := parseRoomForm(req)
		require.NoError(t, err)
		defer form.close()

		create := form.createRequest()

		assert.Equal(t, "12", create.Number)
		assert.Equal(t, model.RoomTypeAccessible, create.RoomType)
		assert.Equal(t, 3, create.Capacity)
		assert.True(t, decimal.RequireFromString("64.90").Equal(create.StandardPrice))
		require.NotNil(t, create.Active)
		assert.False(t, *create.Active)
		require.NotNil(t, create.Image)
		assert.Equal(t, "chambre.png", create.Image.Filename)
		assert.NotNil(t, create.ImageFile)
	})

	t.Run("partial update form", func(t *testing.T) {
		req := multipartRequest(t, map[string]string{model.FieldCapacity: "1"}, nil)

		form, err := parseRoomForm(req)
		require.NoError(t, err)

		update := form.updateRequest()

		require.NotNil(t, update.Capacity)
		assert.Equal(t, 1, *update.Capacity)
		assert.Nil(t, update.StandardPrice)
		assert.Nil(t, update.Active)
		assert.Nil(t, update.Image)
		assert.Empty(t, update.Number)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		for field, value := range map[string]string{
			model.FieldCapacity:      "deux",
			model.FieldStandardPrice: "gratuit",
			model.FieldActive:        "peut-etre",
		} {
			_, err := parseRoomForm(multipartRequest(t, map[string]string{field: value}, nil))

			require.Error(t, err, field)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), field)
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/rooms", bytes.NewBufferString(`{"numero":"12"}`))
		req.Header.Set("Content-Type", "application/json")

		_, err := parseRoomForm(req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
