package controllers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/utils"
)

type ListingController struct {
	DB      *gorm.DB
	Storage *utils.RoomStorage
}

func NewListingController(db *gorm.DB, storage *utils.RoomStorage) *ListingController {
	return &ListingController{DB: db, Storage: storage}
}

// CreateListing creates a room with its uploaded images (multipart form).
func (l *ListingController) CreateListing(c *fiber.Ctx) error {
	title := c.FormValue("title")
	description := c.FormValue("description")
	single := c.FormValue("singleOccupancy")
	double := c.FormValue("doubleOccupancy")
	roomType := c.FormValue("type")

	if title == "" || description == "" || single == "" || double == "" || roomType == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}
	singlePrice, err := strconv.ParseFloat(single, 64)
	if err != nil {
		return utils.Fail(c, utils.Validation("singleOccupancy must be a number"))
	}
	doublePrice, err := strconv.ParseFloat(double, 64)
	if err != nil {
		return utils.Fail(c, utils.Validation("doubleOccupancy must be a number"))
	}

	urls, err := l.Storage.SaveImages(c, title)
	if err != nil {
		return utils.Fail(c, utils.E(utils.KindValidation, "Failed to store images", err))
	}

	identity := mustIdentity(c)
	listing := models.Listing{
		Title:           title,
		Description:     description,
		SingleOccupancy: singlePrice,
		DoubleOccupancy: doublePrice,
		Type:            models.RoomType(roomType),
		UserID:          identity.ID,
	}
	for _, url := range urls {
		listing.Images = append(listing.Images, models.Image{URL: url})
	}

	if err := l.DB.Create(&listing).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to create room", err))
	}

	return utils.OK(c, fiber.StatusOK, "Room created successfully", nil)
}

// GetAllListings lists rooms, optionally filtered by a title search or a
// room type, with images, bookings, reviews and owner attached.
func (l *ListingController) GetAllListings(c *fiber.Ctx) error {
	search := c.Query("search")
	roomType := c.Query("type")

	query := l.DB.
		Preload("Images").
		Preload("Bookings").
		Preload("Reviews").
		Preload("User")

	switch {
	case search != "" && roomType != "":
		query = query.Where("title ILIKE ? OR type = ?", "%"+search+"%", roomType)
	case search != "":
		query = query.Where("title ILIKE ?", "%"+search+"%")
	case roomType != "":
		query = query.Where("type = ?", roomType)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch rooms", err))
	}

	return utils.OK(c, fiber.StatusOK, "Rooms fetched successfully", listings)
}

// GetListingByID returns one room with its relations.
func (l *ListingController) GetListingByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var listing models.Listing
	err := l.DB.
		Preload("Images").
		Preload("Bookings").
		Preload("Reviews.User").
		First(&listing, id).Error
	if err != nil {
		return utils.Fail(c, utils.NotFound("Room not found", err))
	}

	return utils.OK(c, fiber.StatusOK, "Room fetched", listing)
}

// UpdateListing updates scalars and reconciles the image set in one
// transaction: rows not in the client's existingImages keep-list go (all of
// them when the list is absent), newly uploaded files come in. Backing
// files of removed rows are deleted only after the transaction commits.
func (l *ListingController) UpdateListing(c *fiber.Ctx) error {
	id := c.Params("id")
	title := c.FormValue("title")
	description := c.FormValue("description")
	single := c.FormValue("singleOccupancy")
	double := c.FormValue("doubleOccupancy")
	roomType := c.FormValue("type")

	if title == "" || description == "" || single == "" || double == "" || roomType == "" {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}
	singlePrice, err := strconv.ParseFloat(single, 64)
	if err != nil {
		return utils.Fail(c, utils.Validation("singleOccupancy must be a number"))
	}
	doublePrice, err := strconv.ParseFloat(double, 64)
	if err != nil {
		return utils.Fail(c, utils.Validation("doubleOccupancy must be a number"))
	}

	keepIDs, err := parseExistingImages(c.FormValue("existingImages"))
	if err != nil {
		return utils.Fail(c, utils.Validation("Invalid existingImages format"))
	}

	newURLs, err := l.Storage.SaveImages(c, title)
	if err != nil {
		return utils.Fail(c, utils.E(utils.KindValidation, "Failed to store images", err))
	}

	var removed []models.Image
	var updated models.Listing
	txErr := l.DB.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, id).Error; err != nil {
			return utils.NotFound("Room not found", err)
		}

		err := tx.Model(&listing).Updates(map[string]interface{}{
			"title":            title,
			"description":      description,
			"single_occupancy": singlePrice,
			"double_occupancy": doublePrice,
			"type":             roomType,
		}).Error
		if err != nil {
			return err
		}

		drop := tx.Where("listing_id = ?", listing.ID)
		if len(keepIDs) > 0 {
			drop = drop.Where("id NOT IN ?", keepIDs)
		}
		if err := drop.Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) > 0 {
			removedIDs := make([]uint, len(removed))
			for i, img := range removed {
				removedIDs[i] = img.ID
			}
			if err := tx.Delete(&models.Image{}, removedIDs).Error; err != nil {
				return err
			}
		}

		for _, url := range newURLs {
			if err := tx.Create(&models.Image{ListingID: listing.ID, URL: url}).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Images").First(&updated, listing.ID).Error
	})
	if txErr != nil {
		return utils.Fail(c, txErr)
	}

	// DB state is committed; file cleanup is best-effort.
	for _, img := range removed {
		l.Storage.RemoveFile(img.URL)
	}

	return utils.OK(c, fiber.StatusOK, "Room updated successfully", updated)
}

// DeleteListing removes the room, its image rows and their files.
func (l *ListingController) DeleteListing(c *fiber.Ctx) error {
	id := c.Params("id")

	var listing models.Listing
	if err := l.DB.Preload("Images").First(&listing, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("Room not found", err))
	}

	txErr := l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&listing).Error
	})
	if txErr != nil {
		return utils.Fail(c, utils.Internal("Failed to delete room", txErr))
	}

	for _, img := range listing.Images {
		l.Storage.RemoveFile(img.URL)
	}
	l.Storage.RemoveDir(listing.Title)

	return utils.OK(c, fiber.StatusOK, "Room deleted successfully", nil)
}

// AddImages appends uploaded images to an existing room.
func (l *ListingController) AddImages(c *fiber.Ctx) error {
	id := c.Params("id")

	var listing models.Listing
	if err := l.DB.First(&listing, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("Room not found", err))
	}

	urls, err := l.Storage.SaveImages(c, listing.Title)
	if err != nil {
		return utils.Fail(c, utils.E(utils.KindValidation, "Failed to store images", err))
	}
	for _, url := range urls {
		if err := l.DB.Create(&models.Image{ListingID: listing.ID, URL: url}).Error; err != nil {
			return utils.Fail(c, utils.Internal("Failed to add image", err))
		}
	}

	return utils.OK(c, fiber.StatusOK, "Image added successfully", nil)
}

// DeleteImage drops one image row and its backing file.
func (l *ListingController) DeleteImage(c *fiber.Ctx) error {
	id := c.Params("id")

	var image models.Image
	if err := l.DB.First(&image, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("Image not found", err))
	}
	if err := l.DB.Delete(&image).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to delete image", err))
	}
	l.Storage.RemoveFile(image.URL)

	return utils.OK(c, fiber.StatusOK, "Image deleted successfully", nil)
}

// parseExistingImages accepts the keep-list as a JSON array of numbers or
// numeric strings, matching what the admin dashboard sends.
func parseExistingImages(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	var values []interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case float64:
			ids = append(ids, uint(n))
		case string:
			parsed, err := strconv.ParseUint(n, 10, 64)
			if err != nil {
				return nil, err
			}
			ids = append(ids, uint(parsed))
		}
	}
	return ids, nil
}
