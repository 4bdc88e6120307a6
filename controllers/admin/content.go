package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	adminValidators "academy/validators/admin"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveUnit upserts one unit's content and/or video. Fields missing from the
// payload keep their stored values, so saving a video never wipes content.
func SaveUnit(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUnit").(*adminValidators.UnitPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	unit := models.Unit{
		ModuleID: uint(reqData.Module),
		UnitID:   reqData.Unit,
	}
	assignments := map[string]interface{}{"updated_at": time.Now()}
	if reqData.Content != nil {
		unit.Content = *reqData.Content
		assignments["content"] = *reqData.Content
	}
	if reqData.VideoURL != nil {
		unit.VideoURL = *reqData.VideoURL
		assignments["video_url"] = *reqData.VideoURL
	}

	err := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "module_id"}, {Name: "unit_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&unit).Error
	if err != nil {
		log.Printf("Error saving unit %d/%s: %v", reqData.Module, reqData.Unit, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit saved successfully!", nil)
}

// UnitsOverview reports which units of a module already have content or a
// video, for the admin editing screen.
func UnitsOverview(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	type unitOverview struct {
		UnitID     string `json:"unit_id"`
		HasContent bool   `json:"has_content"`
		HasVideo   bool   `json:"has_video"`
	}

	var units []unitOverview
	err := database.Database.Db.Model(&models.Unit{}).
		Select("unit_id, (content IS NOT NULL AND content <> '') AS has_content, (video_url IS NOT NULL AND video_url <> '') AS has_video").
		Where("module_id = ?", moduleID).
		Order("unit_id asc").
		Scan(&units).Error
	if err != nil {
		log.Printf("Error fetching units overview for module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully!", fiber.Map{
		"units": units,
	})
}

// GetSiteSettings returns the landing page settings. Public: the landing
// page renders before sign-in.
func GetSiteSettings(c *fiber.Ctx) error {
	var settings models.SiteSettings
	err := database.Database.Db.First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Site settings fetched successfully!", models.SiteSettings{})
	}
	if err != nil {
		log.Printf("Error fetching site settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch site settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Site settings fetched successfully!", settings)
}

// SaveSiteSettings upserts the single settings row (id = 1).
func SaveSiteSettings(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSiteSettings").(*adminValidators.SiteSettingsPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	settings := models.SiteSettings{ID: 1}
	assignments := map[string]interface{}{}
	if reqData.HeroVideo != nil {
		settings.HeroVideo = *reqData.HeroVideo
		assignments["hero_video"] = *reqData.HeroVideo
	}
	if reqData.Video2 != nil {
		settings.Video2 = *reqData.Video2
		assignments["video2"] = *reqData.Video2
	}
	if reqData.HomeContent != nil {
		settings.HomeContent = *reqData.HomeContent
		assignments["home_content"] = *reqData.HomeContent
	}

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
	if len(assignments) > 0 {
		conflict.DoUpdates = clause.Assignments(assignments)
	} else {
		conflict.DoNothing = true
	}

	if err := database.Database.Db.Clauses(conflict).Create(&settings).Error; err != nil {
		log.Printf("Error saving site settings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save site settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Site settings saved successfully!", nil)
}
