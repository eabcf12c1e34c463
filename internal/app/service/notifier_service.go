package service

import (
	"fmt"

	"github.com/nexora/nexora-backend/internal/app/model"
	"github.com/nexora/nexora-backend/internal/app/repository"
	"github.com/nexora/nexora-backend/pkg/logger"
	"github.com/nexora/nexora-backend/pkg/mailer"
)

// Pusher delivers a payload to a connected user. The websocket hub
// implements it; a nil Pusher disables push delivery.
type Pusher interface {
	Push(userID uint, payload interface{})
}

// Notifier fans review lifecycle events out to email, the in-app inbox
// and the websocket hub. Every channel is best-effort: a failed delivery
// is logged and never propagated to the caller, so moderation decisions
// commit regardless of mail or socket trouble.
type Notifier interface {
	ReviewSubmitted(review *model.Review)
	ReviewApproved(review *model.Review)
	ReviewRejected(review *model.Review)
	ReviewReported(review *model.Review)
}

type notifier struct {
	mailClient       mailer.Client
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	pusher           Pusher
	opsEmail         string
}

func NewNotifier(
	mailClient mailer.Client,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	pusher Pusher,
	opsEmail string,
) Notifier {
	return &notifier{
		mailClient:       mailClient,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		pusher:           pusher,
		opsEmail:         opsEmail,
	}
}

type reviewMailData struct {
	UserName          string
	ProductName       string
	ReviewContent     string
	ModeratorResponse string
}

func (n *notifier) ReviewSubmitted(review *model.Review) {
	n.notifyAuthor(review, mailer.ReviewSubmittedTemplate, model.NotificationTypeReviewSubmitted,
		"Review received",
		fmt.Sprintf("Your review of %s is awaiting moderation.", review.Product.Name))
}

func (n *notifier) ReviewApproved(review *model.Review) {
	n.notifyAuthor(review, mailer.ReviewApprovedTemplate, model.NotificationTypeReviewApproved,
		"Review published",
		fmt.Sprintf("Your review of %s is now live.", review.Product.Name))
}

func (n *notifier) ReviewRejected(review *model.Review) {
	n.notifyAuthor(review, mailer.ReviewRejectedTemplate, model.NotificationTypeReviewRejected,
		"Review not published",
		fmt.Sprintf("Your review of %s was not approved.", review.Product.Name))
}

// ReviewReported notifies the ops mailbox and every moderator's inbox.
// The review author is not told their review was flagged.
func (n *notifier) ReviewReported(review *model.Review) {
	data := reviewMailData{
		UserName:      review.User.Name,
		ProductName:   review.Product.Name,
		ReviewContent: review.Comment,
	}
	if err := n.mailClient.Send(mailer.ReviewReportedTemplate, n.opsEmail, data); err != nil {
		logger.Error("Failed to send report email", err, map[string]interface{}{
			"review_id": review.ID,
			"to":        n.opsEmail,
		})
	}

	moderators, err := n.userRepo.FindModerators()
	if err != nil {
		logger.Error("Failed to load moderators for report notification", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return
	}

	for _, moderator := range moderators {
		n.deliverInApp(&model.Notification{
			UserID:           moderator.ID,
			Type:             model.NotificationTypeReviewReported,
			Title:            "Review reported",
			Content:          fmt.Sprintf("A review of %s was reported and needs attention.", review.Product.Name),
			Link:             fmt.Sprintf("/moderation/reviews/%d", review.ID),
			RelatedReviewID:  &review.ID,
			RelatedProductID: &review.ProductID,
		})
	}
}

func (n *notifier) notifyAuthor(review *model.Review, template string, notifType model.NotificationType, title, content string) {
	data := reviewMailData{
		UserName:          review.User.Name,
		ProductName:       review.Product.Name,
		ReviewContent:     review.Comment,
		ModeratorResponse: review.Response.Comment,
	}
	if err := n.mailClient.Send(template, review.User.Email, data); err != nil {
		logger.Error("Failed to send review email", err, map[string]interface{}{
			"review_id": review.ID,
			"template":  template,
			"to":        review.User.Email,
		})
	}

	n.deliverInApp(&model.Notification{
		UserID:           review.UserID,
		Type:             notifType,
		Title:            title,
		Content:          content,
		Link:             fmt.Sprintf("/products/%s", review.Product.Slug),
		RelatedReviewID:  &review.ID,
		RelatedProductID: &review.ProductID,
	})
}

func (n *notifier) deliverInApp(notification *model.Notification) {
	if err := n.notificationRepo.CreateNotification(notification); err != nil {
		logger.Error("Failed to store notification", err, map[string]interface{}{
			"user_id": notification.UserID,
			"type":    notification.Type,
		})
		return
	}

	if n.pusher != nil {
		n.pusher.Push(notification.UserID, notification)
	}
}
