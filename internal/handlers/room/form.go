package room

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"solireserve/internal/domains/room/model"
	"solireserve/internal/domains/room/model/dto"
	"solireserve/shared"
	"solireserve/shared/constant"
	"solireserve/shared/failure"

	"github.com/shopspring/decimal"
)

// roomForm is the multipart body shared by create and update. Absent fields stay nil.
type roomForm struct {
	hotelID  string
	number   string
	roomType model.RoomType
	capacity *int
	price    *decimal.Decimal
	active   *bool
	image    *multipart.FileHeader
	file     multipart.File
}

func parseRoomForm(r *http.Request) (form roomForm, err error) {
	if err = r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return form, failure.BadRequest(fmt.Errorf("invalid multipart form: %w", err))
	}

	form.hotelID = r.FormValue(model.FieldHotelID)
	form.number = r.FormValue(model.FieldNumber)
	form.roomType = model.RoomType(r.FormValue(model.FieldRoomType))

	if raw := r.FormValue(model.FieldCapacity); raw != constant.Empty {
		capacity, err := shared.ConvertStringToInt(raw)
		if err != nil {
			return form, failure.BadRequestFromString(model.FieldCapacity + " must be an integer")
		}

		form.capacity = &capacity
	}

	if raw := r.FormValue(model.FieldStandardPrice); raw != constant.Empty {
		price, err := shared.ConvertStringToDecimal(raw)
		if err != nil {
			return form, failure.BadRequestFromString(model.FieldStandardPrice + " must be a number")
		}

		form.price = &price
	}

	if raw := r.FormValue(model.FieldActive); raw != constant.Empty {
		if form.active = shared.ConvertStringToBool(raw); form.active == nil {
			return form, failure.BadRequestFromString(model.FieldActive + " must be a boolean")
		}
	}

	file, header, err := r.FormFile(model.FieldImage)

	switch {
	case err == nil:
		form.file, form.image = file, header
	case !errors.Is(err, http.ErrMissingFile):
		return form, failure.BadRequest(fmt.Errorf("invalid image: %w", err))
	}

	return form, nil
}

func (f roomForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

func (f roomForm) createRequest() dto.CreateRoomRequest {
	req := dto.CreateRoomRequest{
		HotelID:   f.hotelID,
		Number:    f.number,
		RoomType:  f.roomType,
		Active:    f.active,
		Image:     f.image,
		ImageFile: f.file,
	}

	if f.capacity != nil {
		req.Capacity = *f.capacity
	}

	if f.price != nil {
		req.StandardPrice = *f.price
	}

	return req
}

func (f roomForm) updateRequest() dto.UpdateRoomRequest {
	return dto.UpdateRoomRequest{
		Number:        f.number,
		RoomType:      f.roomType,
		Capacity:      f.capacity,
		StandardPrice: f.price,
		Active:        f.active,
		Image:         f.image,
		ImageFile:     f.file,
	}
}
