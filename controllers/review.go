package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/utils"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview records feedback for the listing in the path by the caller.
// Nothing stops a user reviewing the same listing twice.
func (r *ReviewController) CreateReview(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(struct {
		Content string  `json:"content"`
		Rating  float64 `json:"rating"`
	})
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, utils.Validation("Cannot parse JSON"))
	}
	if input.Content == "" || input.Rating == 0 {
		return utils.Fail(c, utils.Validation("All fields are required"))
	}

	var listing models.Listing
	if err := r.DB.First(&listing, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("Room not found", err))
	}

	identity := mustIdentity(c)
	review := models.Review{
		ListingID: listing.ID,
		UserID:    identity.ID,
		Content:   input.Content,
		Rating:    input.Rating,
	}
	if err := r.DB.Create(&review).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to create review", err))
	}

	return utils.OK(c, fiber.StatusOK, "Thank you for your valuable feedback", nil)
}

// GetAllReviews lists every review with its author and listing.
func (r *ReviewController) GetAllReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	err := r.DB.
		Preload("User").
		Preload("Listing.Images").
		Find(&reviews).Error
	if err != nil {
		return utils.Fail(c, utils.Internal("Failed to fetch reviews", err))
	}
	for i := range reviews {
		reviews[i].User.Password = ""
	}

	return utils.OK(c, fiber.StatusOK, "Reviews fetched successfully", reviews)
}

// DeleteReview removes one review.
func (r *ReviewController) DeleteReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Review
	if err := r.DB.First(&review, id).Error; err != nil {
		return utils.Fail(c, utils.NotFound("Review not found", err))
	}
	if err := r.DB.Delete(&review).Error; err != nil {
		return utils.Fail(c, utils.Internal("Failed to delete review", err))
	}

	return utils.OK(c, fiber.StatusOK, "Review deleted successfully", nil)
}
