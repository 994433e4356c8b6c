package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomadai/internal/models/db_models"
	"nomadai/internal/services"
	"nomadai/pkg/utils"
)

type TagsController struct {
	tagService services.TagServiceInterface
}

func NewTagsController(tagService services.TagServiceInterface) *TagsController {
	return &TagsController{tagService: tagService}
}

func (tc *TagsController) ListTags(c *gin.Context) {
	tags, err := tc.tagService.ListTags(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, tags, "Tags fetched successfully")
}

func (tc *TagsController) CreateTag(c *gin.Context) {
	var tag db_models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if tag.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tag name is required")
		return
	}

	if err := tc.tagService.CreateTag(c.Request.Context(), tag); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Tag created successfully")
}
