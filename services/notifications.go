package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"
)

// NotificationService handles all push notification logic
type NotificationService struct{}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData represents the data payload for notifications
type NotificationData struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	VehicleID string `json:"vehicleId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	OwnerID   string `json:"ownerId,omitempty"`
	// Deep linking data
	Screen string `json:"screen"`           // Target screen to navigate to
	Params string `json:"params"`           // JSON string of navigation parameters
	Action string `json:"action,omitempty"` // Specific action to perform
}

// getUserPushTokens retrieves all push tokens for a user
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}

	return tokens, nil
}

// SendNotificationToUser sends a notification to a specific user
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("Failed to get push tokens for user %d: %v", userID, err)
		return err
	}

	dataMap := map[string]string{
		"type":      data.Type,
		"id":        data.ID,
		"vehicleId": data.VehicleID,
		"userId":    data.UserID,
		"ownerId":   data.OwnerID,
		"screen":    data.Screen,
		"params":    data.Params,
		"action":    data.Action,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}

	return lastError
}

// SendReservationNotificationToOwner sends a notification when a rental request is made
func (ns *NotificationService) SendReservationNotificationToOwner(reservationID, vehicleID, ownerID, renterID uint, renterName, vehicleTitle string) error {
	title := "Nouvelle Demande de Location!"
	body := fmt.Sprintf("%s souhaite louer %s", renterName, vehicleTitle)

	params := fmt.Sprintf(`{"reservationId": %d, "vehicleId": %d, "renterId": %d}`, reservationID, vehicleID, renterID)

	data := NotificationData{
		Type:      "reservation_created",
		ID:        fmt.Sprintf("%d", reservationID),
		VehicleID: fmt.Sprintf("%d", vehicleID),
		UserID:    fmt.Sprintf("%d", renterID),
		OwnerID:   fmt.Sprintf("%d", ownerID),
		Screen:    "OwnerReservations",
		Params:    params,
		Action:    "view_reservation",
	}

	err := ns.SendNotificationToUser(ownerID, title, body, data)
	if err != nil {
		log.Printf("Failed to send reservation notification to owner %d: %v", ownerID, err)
	}
	return err
}

// SendReservationStatusNotificationToRenter notifies the renter when the owner
// confirms or rejects their request.
func (ns *NotificationService) SendReservationStatusNotificationToRenter(reservationID, vehicleID, renterID, ownerID uint, status, ownerName, vehicleTitle string) error {
	var title, body string
	switch status {
	case "confirmed":
		title = "Location Confirmée!"
		body = fmt.Sprintf("%s a confirmé votre location de %s", ownerName, vehicleTitle)
	case "rejected":
		title = "Location Refusée"
		body = fmt.Sprintf("%s a refusé votre demande pour %s", ownerName, vehicleTitle)
	default:
		title = "Statut de Location Mis à Jour"
		body = fmt.Sprintf("Votre location de %s est maintenant: %s", vehicleTitle, status)
	}

	params := fmt.Sprintf(`{"reservationId": %d, "vehicleId": %d, "ownerId": %d}`, reservationID, vehicleID, ownerID)

	data := NotificationData{
		Type:      "reservation_status",
		ID:        fmt.Sprintf("%d", reservationID),
		VehicleID: fmt.Sprintf("%d", vehicleID),
		OwnerID:   fmt.Sprintf("%d", ownerID),
		Screen:    "MyRentals",
		Params:    params,
		Action:    "view_reservation",
	}

	return ns.SendNotificationToUser(renterID, title, body, data)
}

// SendPaymentNotificationToOwner notifies the owner when a payment settles.
func (ns *NotificationService) SendPaymentNotificationToOwner(transactionID, reservationID, ownerID uint, netAmount float64, currency, vehicleTitle string) error {
	title := "Paiement Reçu!"
	body := fmt.Sprintf("Vous avez reçu %.0f %s pour la location de %s", netAmount, currency, vehicleTitle)

	params := fmt.Sprintf(`{"transactionId": %d, "reservationId": %d}`, transactionID, reservationID)

	data := NotificationData{
		Type:    "payment_received",
		ID:      fmt.Sprintf("%d", transactionID),
		OwnerID: fmt.Sprintf("%d", ownerID),
		Screen:  "OwnerPayments",
		Params:  params,
		Action:  "view_payment",
	}

	return ns.SendNotificationToUser(ownerID, title, body, data)
}

// SendMessageNotification notifies the recipient of a new chat message.
func (ns *NotificationService) SendMessageNotification(recipientID, senderID uint, senderName, vehicleTitle string) error {
	title := "Nouveau Message"
	body := fmt.Sprintf("%s vous a envoyé un message concernant %s", senderName, vehicleTitle)

	params := fmt.Sprintf(`{"senderId": %d, "senderName": "%s"}`, senderID, senderName)

	data := NotificationData{
		Type:   "message_received",
		UserID: fmt.Sprintf("%d", senderID),
		Screen: "Messages",
		Params: params,
		Action: "view_conversation",
	}

	return ns.SendNotificationToUser(recipientID, title, body, data)
}

// SendListingModeratedNotification notifies an owner about a moderation decision.
func (ns *NotificationService) SendListingModeratedNotification(vehicleID, ownerID uint, status, vehicleTitle string) error {
	var title, body string
	if status == "approved" {
		title = "Annonce Approuvée!"
		body = fmt.Sprintf("Votre annonce %s est maintenant visible", vehicleTitle)
	} else {
		title = "Annonce Refusée"
		body = fmt.Sprintf("Votre annonce %s n'a pas été approuvée", vehicleTitle)
	}

	params := fmt.Sprintf(`{"vehicleId": %d}`, vehicleID)

	data := NotificationData{
		Type:      "listing_moderated",
		VehicleID: fmt.Sprintf("%d", vehicleID),
		OwnerID:   fmt.Sprintf("%d", ownerID),
		Screen:    "MyListings",
		Params:    params,
		Action:    "view_listing",
	}

	return ns.SendNotificationToUser(ownerID, title, body, data)
}
