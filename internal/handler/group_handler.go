package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"groupchat/internal/auth"
	"groupchat/internal/errors"
	"groupchat/internal/service"
)

// GroupHandler handles group and group-message endpoints.
type GroupHandler struct {
	groupService service.GroupService
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroupRequest represents a create-group request.
type CreateGroupRequest struct {
	GroupName string `json:"groupName" validate:"required"`
}

// AddMembersRequest represents an add-members request.
type AddMembersRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required"`
}

// SendMessageRequest represents a send-message request.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// CreateGroup godoc
// @Summary Create a group with the caller as sole member and owner
// @Tags groups
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body CreateGroupRequest true "Group data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /groups/createGroup [post]
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Group name is required"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Group name is required"})
	}

	group, err := h.groupService.CreateGroup(c.Request().Context(), req.GroupName, principal.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Group created successfully",
		"group":   group,
	})
}

// DeleteGroup godoc
// @Summary Delete a group (owner only)
// @Tags groups
// @Produce json
// @Security TokenAuth
// @Param groupId path string true "Group ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /groups/deleteGroup/{groupId} [delete]
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid group id"})
	}

	if err := h.groupService.DeleteGroup(c.Request().Context(), groupID, principal.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Group deleted successfully"})
}

// SearchGroup godoc
// @Summary Search groups by name fragment, case-insensitive
// @Tags groups
// @Produce json
// @Security TokenAuth
// @Param groupName path string true "Name fragment"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /groups/searchGroup/{groupName} [get]
func (h *GroupHandler) SearchGroup(c echo.Context) error {
	groups, err := h.groupService.SearchGroups(c.Request().Context(), c.Param("groupName"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"groups": groups})
}

// AddMembers godoc
// @Summary Add members to a group (members only)
// @Tags groups
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param groupId path string true "Group ID"
// @Param request body AddMembersRequest true "User IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /groups/addMembers/{groupId} [post]
func (h *GroupHandler) AddMembers(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid group id"})
	}

	var req AddMembersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "User ids are required"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "User ids are required"})
	}

	memberIDs := make([]primitive.ObjectID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid user id"})
		}
		memberIDs = append(memberIDs, id)
	}

	group, err := h.groupService.AddMembers(c.Request().Context(), groupID, principal.ID, memberIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Members added successfully",
		"group":   group,
	})
}

// SendMessage godoc
// @Summary Send a message to a group (members only)
// @Tags messages
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param groupId path string true "Group ID"
// @Param request body SendMessageRequest true "Message text"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /groups/sendMessage/{groupId} [post]
func (h *GroupHandler) SendMessage(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid group id"})
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Message is required"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Message is required"})
	}

	group, msg, err := h.groupService.SendMessage(c.Request().Context(), groupID, principal.ID, req.Message)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Message sent successfully",
		"group":   group,
		"sentBy":  principal.Username,
		"content": msg.Content,
	})
}

// LikeMessage godoc
// @Summary Toggle the caller's like on a message
// @Tags messages
// @Produce json
// @Security TokenAuth
// @Param groupId path string true "Group ID"
// @Param messageId path string true "Message ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /groups/likeMessage/{groupId}/{messageId} [post]
func (h *GroupHandler) LikeMessage(c echo.Context) error {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	groupID, err := primitive.ObjectIDFromHex(c.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid group id"})
	}
	messageID, err := primitive.ObjectIDFromHex(c.Param("messageId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "Invalid message id"})
	}

	group, msg, liked, err := h.groupService.ToggleLike(c.Request().Context(), groupID, messageID, principal.ID)
	if err != nil {
		return respondError(c, err)
	}

	responseMessage := "Message unliked"
	if liked {
		responseMessage = "Message liked"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":   responseMessage,
		"group":     group,
		"messageId": messageID.Hex(),
		"likedBy":   msg.Likes,
	})
}
