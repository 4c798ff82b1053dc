package routes

import (
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/services"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type StartConversationInput struct {
	VehicleID uint   `json:"vehicleID" validate:"required"`
	Text      string `json:"text" validate:"max=2048"`
}

// StartConversation finds or creates the renter↔owner conversation for a
// vehicle, optionally sending a first message.
func StartConversation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input StartConversationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if vehicle.OwnerID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, "Invalid Conversation",
			"You cannot start a conversation about your own vehicle.", ctx)
		return
	}

	var conversation models.Conversation
	err := storage.DB.Where("vehicle_id = ? AND renter_id = ?", vehicle.ID, claims.ID).
		First(&conversation).Error
	if err == gorm.ErrRecordNotFound {
		conversation = models.Conversation{
			VehicleID:     vehicle.ID,
			OwnerID:       vehicle.OwnerID,
			RenterID:      claims.ID,
			LastMessageAt: time.Now(),
		}
		if err := storage.DB.Create(&conversation).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	} else if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.Text != "" {
		sendMessageInConversation(&conversation, claims.ID, input.Text, nil)
	}

	ctx.JSON(conversation)
}

// GetConversations lists the user's inbox, newest activity first.
func GetConversations(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var conversations []models.Conversation
	res := storage.DB.Preload("Vehicle").Preload("Owner").Preload("Renter").
		Where("owner_id = ? OR renter_id = ?", claims.ID, claims.ID).
		Order("last_message_at DESC").Find(&conversations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(conversations)
}

// GetMessages returns a conversation's messages in chronological order.
func GetMessages(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	conversation := getConversationForParticipant(id, claims.ID, ctx)
	if conversation == nil {
		return
	}

	var messages []models.Message
	res := storage.DB.Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").Find(&messages)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(messages)
}

type SendMessageInput struct {
	Text       string `json:"text" validate:"required_without=VehicleRef,max=2048"`
	VehicleRef *uint  `json:"vehicleRef"` // attaches a vehicle card
}

// SendMessage appends a message and refreshes the conversation preview. The
// two writes are sequential, not transactional: a stale preview is tolerable,
// a lost message is not.
func SendMessage(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var input SendMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	conversation := getConversationForParticipant(id, claims.ID, ctx)
	if conversation == nil {
		return
	}

	message, err := sendMessageInConversation(conversation, claims.ID, input.Text, input.VehicleRef)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

// MarkConversationSeen zeroes the caller's unread counter and marks received
// messages as seen.
func MarkConversationSeen(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	conversation := getConversationForParticipant(id, claims.ID, ctx)
	if conversation == nil {
		return
	}

	now := time.Now()
	storage.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND state <> ?",
			conversation.ID, claims.ID, "seen").
		Updates(map[string]interface{}{"state": "seen", "seen_at": now})

	unreadColumn := "renter_unread"
	if claims.ID == conversation.OwnerID {
		unreadColumn = "owner_unread"
	}
	storage.DB.Model(conversation).Update(unreadColumn, 0)

	ctx.StatusCode(iris.StatusNoContent)
}

func getConversationForParticipant(id string, userID uint, ctx iris.Context) *models.Conversation {
	var conversation models.Conversation
	if err := storage.DB.Preload("Vehicle").First(&conversation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	if conversation.OwnerID != userID && conversation.RenterID != userID {
		ctx.StatusCode(iris.StatusForbidden)
		return nil
	}
	return &conversation
}

func sendMessageInConversation(conversation *models.Conversation, senderID uint, text string, vehicleRef *uint) (*models.Message, error) {
	receiverID := conversation.OwnerID
	if senderID == conversation.OwnerID {
		receiverID = conversation.RenterID
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
		Type:           "text",
		State:          "sent",
	}

	if vehicleRef != nil {
		var refVehicle models.Vehicle
		if err := storage.DB.First(&refVehicle, *vehicleRef).Error; err == nil {
			message.Type = "vehicle_card"
			message.RefType = "vehicle"
			message.RefID = vehicleRef
			message.PreviewTitle = refVehicle.Title
			message.PreviewSubtitle = refVehicle.City
		}
	}

	if err := storage.DB.Create(&message).Error; err != nil {
		return nil, err
	}

	preview := text
	if preview == "" && message.Type == "vehicle_card" {
		preview = message.PreviewTitle
	}
	if len(preview) > 512 {
		preview = preview[:512]
	}

	updates := map[string]interface{}{
		"last_message_text": preview,
		"last_sender_id":    senderID,
		"last_message_at":   time.Now(),
	}
	if receiverID == conversation.OwnerID {
		updates["owner_unread"] = gorm.Expr("owner_unread + 1")
	} else {
		updates["renter_unread"] = gorm.Expr("renter_unread + 1")
	}
	storage.DB.Model(conversation).Updates(updates)

	vehicleTitle := ""
	if conversation.Vehicle != nil {
		vehicleTitle = conversation.Vehicle.Title
	}
	var sender models.User
	storage.DB.First(&sender, senderID)
	go services.NewNotificationService().SendMessageNotification(
		receiverID, senderID, sender.FirstName+" "+sender.LastName, vehicleTitle)

	return &message, nil
}
