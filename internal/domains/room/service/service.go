package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"solireserve/config"
	"solireserve/infras/otel"
	"solireserve/infras/s3"
	hotelModel "solireserve/internal/domains/hotel/model"
	hotelRepo "solireserve/internal/domains/hotel/repository"
	"solireserve/internal/domains/room/model"
	"solireserve/internal/domains/room/model/dto"
	"solireserve/internal/domains/room/repository"
	"solireserve/shared"
	"solireserve/shared/cache"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo   repository.Room
	hotels hotelRepo.Hotel
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	s3     s3.S3
}

func New(repo repository.Room, hotels hotelRepo.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:   repo,
		hotels: hotels,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		s3:     s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hotelExist, err := s.hotels.Exist(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check hotel existence")

		return fmt.Errorf("failed to check hotel existence: %w", err)
	}

	if !hotelExist {
		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	if err = s.checkNumber(ctx, req.HotelID, req.Number, constant.Empty); err != nil {
		return err
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.Image != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := imageObjectName(req.Image.Filename)

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload image to S3")

			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict("room number already exists in this hotel") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (page dto.GetRoomsResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return page, err
		}

		rooms, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get rooms")

			return page, fmt.Errorf("failed to get rooms: %w", err)
		}

		page.FromModels(rooms, total, req.Limit)

		return page, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (int, error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count rooms")

			return 0, fmt.Errorf("failed to count rooms: %w", err)
		}

		return total, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheGetRoom, id), s.cfg.Cache.TTL,
		func(ctx context.Context) (room dto.RoomResponse, err error) {
			found, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to get room")

				return room, fmt.Errorf("failed to get room: %w", err)
			}

			if found.ID == constant.Empty {
				return room, failure.NotFound("room not found") // nolint:wrapcheck
			}

			room.FromModel(found)

			return room, nil
		})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentRoom, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if currentRoom.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if req.Number != constant.Empty && req.Number != currentRoom.Number {
		if err = s.checkNumber(ctx, currentRoom.HotelID, req.Number, currentRoom.ID); err != nil {
			return err
		}
	}

	return s.updateInternal(ctx, req, currentRoom, user, filter)
}

// checkNumber runs before any image is uploaded. The unique index still guards concurrent writers.
func (s *serviceImpl) checkNumber(ctx context.Context, hotelID, number, exceptID string) error {
	taken, err := s.repo.NumberTaken(ctx, hotelID, number, exceptID)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return failure.Conflict("room number already exists in this hotel") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdateRoomRequest, currentRoom model.Room, user string, filter gDto.FilterGroup) error {
	imageURL := constant.Empty
	var uploadedObjectName string
	bucketName := s.cfg.External.S3.BucketName

	if req.Image != nil {
		filename := imageObjectName(req.Image.Filename)

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		// Cleanup: delete newly uploaded image if DB update fails
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update room: %w", err)
	}

	// Delete old image if update succeeded and new image was uploaded
	if imageURL != constant.Empty && currentRoom.Image != constant.Empty {
		oldObjectName := s.s3.ObjectNameFromURL(model.EntityName, currentRoom.Image)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, currentRoom.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID, model.FieldImage)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	image := current.Image

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("room has reservations, deactivate it instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		if image != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			if objectName := s.s3.ObjectNameFromURL(model.EntityName, image); objectName != constant.Empty {
				_ = s.s3.DeleteFile(c, bucketName, model.EntityName, objectName)
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

func imageObjectName(original string) string {
	filename := uuid.NewString()

	if ext := filepath.Ext(original); ext != constant.Empty {
		filename += strings.ToLower(ext)
	}

	return filename
}
