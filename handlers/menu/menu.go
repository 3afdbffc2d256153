package menu

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
	"github.com/collegehub/cms-api/utils/middleware"
	"github.com/collegehub/cms-api/utils/response"
	"github.com/collegehub/cms-api/utils/validation"
)

// maxMenuDepth bounds tree assembly against parent cycles in stored rows
const maxMenuDepth = 8

// MenuHandler handles navigation tree management
type MenuHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(db *gorm.DB) *MenuHandler {
	return &MenuHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// MenuItemRequest represents the request body for a menu item
type MenuItemRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	Slug      string `json:"slug" validate:"omitempty,max=255"`
	Location  string `json:"location" validate:"omitempty,oneof=main footer admin"`
	URL       string `json:"url" validate:"omitempty,max=1024"`
	PageID    *uint  `json:"page_id"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// MenuNode is a menu item with its resolved children
type MenuNode struct {
	model.MenuItem
	Nodes []MenuNode `json:"nodes,omitempty"`
}

// Tree handles GET /api/v1/menus/:location, returning the nested
// navigation tree for the selected college plus global items.
func (h *MenuHandler) Tree(c *fiber.Ctx) error {
	location := c.Params("location")

	query := h.db.Where("location = ? AND is_active = ?", location, true)
	if collegeID, ok := middleware.SelectedCollegeID(c); ok {
		query = query.Where("college_id = ? OR college_id IS NULL", collegeID)
	} else {
		query = query.Where("college_id IS NULL")
	}

	var items []model.MenuItem
	if err := query.Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch menu items")
	}

	return response.Success(c, buildTree(items))
}

// buildTree assembles the parent/child structure with bounded depth
func buildTree(items []model.MenuItem) []MenuNode {
	children := make(map[uint][]model.MenuItem)
	byID := make(map[uint]bool, len(items))
	for _, it := range items {
		byID[it.ID] = true
	}

	var roots []model.MenuItem
	for _, it := range items {
		if it.ParentID == nil || !byID[*it.ParentID] || *it.ParentID == it.ID {
			roots = append(roots, it)
		} else {
			children[*it.ParentID] = append(children[*it.ParentID], it)
		}
	}

	var build func(item model.MenuItem, depth int) MenuNode
	build = func(item model.MenuItem, depth int) MenuNode {
		node := MenuNode{MenuItem: item}
		if depth >= maxMenuDepth {
			return node
		}
		for _, child := range children[item.ID] {
			node.Nodes = append(node.Nodes, build(child, depth+1))
		}
		return node
	}

	out := make([]MenuNode, 0, len(roots))
	for _, root := range roots {
		out = append(out, build(root, 0))
	}
	return out
}

// CreateItem handles POST /api/v1/menus. The item is scoped to the
// selected college when one is resolved, otherwise it is global.
func (h *MenuHandler) CreateItem(c *fiber.Ctx) error {
	var req MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	location := req.Location
	if location == "" {
		location = model.MenuLocationMain
	}

	item := model.MenuItem{
		Title:     validation.SanitizeString(req.Title),
		Slug:      req.Slug,
		Location:  location,
		URL:       req.URL,
		PageID:    req.PageID,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if collegeID, ok := middleware.SelectedCollegeID(c); ok {
		item.CollegeID = &collegeID
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if item.ParentID != nil {
		var count int64
		if err := h.db.Model(&model.MenuItem{}).Where("id = ?", *item.ParentID).Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to verify parent item")
		}
		if count == 0 {
			return response.BadRequest(c, "Parent menu item does not exist")
		}
	}

	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to create menu item")
	}

	return response.Created(c, item)
}

// UpdateItem handles PUT /api/v1/menus/:id
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid menu item id")
	}

	var req MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var item model.MenuItem
	if err := h.db.First(&item, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Menu item not found")
		}
		return response.InternalServerError(c, "Failed to fetch menu item")
	}

	item.Title = validation.SanitizeString(req.Title)
	item.Slug = req.Slug
	if req.Location != "" {
		item.Location = req.Location
	}
	item.URL = req.URL
	item.PageID = req.PageID
	item.SortOrder = req.SortOrder
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	// An item can never become its own parent
	if req.ParentID != nil && *req.ParentID == item.ID {
		item.ParentID = nil
	} else {
		item.ParentID = req.ParentID
	}

	if err := h.db.Save(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to update menu item")
	}

	return response.Success(c, item)
}

// DeleteItem handles DELETE /api/v1/menus/:id. Children cascade.
func (h *MenuHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid menu item id")
	}

	result := h.db.Delete(&model.MenuItem{}, uint(id))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete menu item")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Menu item not found")
	}

	return response.NoContent(c)
}
