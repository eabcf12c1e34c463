package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/service"
	apperrors "github.com/nexora/nexora-backend/internal/errors"
	"github.com/nexora/nexora-backend/internal/middleware"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// GetNotifications returns the authenticated user's inbox.
// GET /api/v1/notifications
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var notifType *model.NotificationType
	if typeParam := c.Query("type"); typeParam != "" {
		t := model.NotificationType(typeParam)
		notifType = &t
	}

	var isRead *bool
	if readParam := c.Query("is_read"); readParam != "" {
		read := readParam == "true"
		isRead = &read
	}

	notifications, total, unread, err := ctrl.notificationService.GetNotifications(userID, notifType, isRead, page, pageSize)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
		"page":          page,
	})
}

// GetUnreadCount returns the unread notification count.
// GET /api/v1/notifications/unread-count
func (ctrl *NotificationController) GetUnreadCount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	count, err := ctrl.notificationService.GetUnreadCount(userID)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch unread count")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkAsRead marks one notification as read.
// PATCH /api/v1/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	notification, err := ctrl.notificationService.MarkAsRead(id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound):
			apperrors.NotFound(c, apperrors.NotificationNotFound, "Notification not found")
		case errors.Is(err, service.ErrNotificationForbidden):
			apperrors.Forbidden(c, "Notification belongs to another user")
		default:
			apperrors.InternalError(c, "Failed to mark notification as read")
		}
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead marks every notification as read.
// POST /api/v1/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.notificationService.MarkAllAsRead(userID); err != nil {
		apperrors.InternalError(c, "Failed to mark notifications as read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotification removes a notification from the inbox.
// DELETE /api/v1/notifications/:id
func (ctrl *NotificationController) DeleteNotification(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.notificationService.DeleteNotification(id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound):
			apperrors.NotFound(c, apperrors.NotificationNotFound, "Notification not found")
		case errors.Is(err, service.ErrNotificationForbidden):
			apperrors.Forbidden(c, "Notification belongs to another user")
		default:
			apperrors.InternalError(c, "Failed to delete notification")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
