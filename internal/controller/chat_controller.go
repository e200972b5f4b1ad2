package controller

import (
	"io"
	"mime/multipart"

	"direct-chat-be/internal/dto"
	"direct-chat-be/internal/pkg/serverutils"
	"direct-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateChatRoom(ctx *fiber.Ctx) error
	ChatConnections(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	EditMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
	PinMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService    service.IChatService
	authMiddleware fiber.Handler
}

func NewChatController(chatService service.IChatService, authMiddleware fiber.Handler) IChatController {
	return &chatController{
		chatService:    chatService,
		authMiddleware: authMiddleware,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/chat-connections", c.authMiddleware, c.ChatConnections)
	r.Get("/get-messages/:chatId", c.authMiddleware, c.GetMessages)
	r.Post("/send-message", c.authMiddleware, c.SendMessage)
	r.Post("/create-chat-room", c.authMiddleware, c.CreateChatRoom)
	r.Put("/edit-message/:messageId", c.authMiddleware, c.EditMessage)
	r.Delete("/delete-message/:messageId", c.authMiddleware, c.DeleteMessage)
	r.Put("/pin-message/:messageId", c.authMiddleware, c.PinMessage)
}

func (c *chatController) CreateChatRoom(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateChatRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateRoom(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat room", res))
}

func (c *chatController) ChatConnections(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.chatService.ListConnections(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat connections", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chatId, err := uuid.Parse(ctx.Params("chatId"))
	if err != nil {
		return serverutils.InvalidArgument("invalid chat id")
	}

	res, err := c.chatService.ListMessages(ctx.Context(), userId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

// SendMessage accepts multipart form data: chatRoomId, text, optional
// replyToMessageId, and any number of files under the "attachments" key.
func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chatRoomId, err := uuid.Parse(ctx.FormValue("chatRoomId"))
	if err != nil {
		return serverutils.InvalidArgument("chatRoomId is required")
	}

	req := dto.SendMessageRequest{
		ChatRoomId: chatRoomId,
		Text:       ctx.FormValue("text"),
	}

	if replyTo := ctx.FormValue("replyToMessageId"); replyTo != "" {
		replyToId, err := uuid.Parse(replyTo)
		if err != nil {
			return serverutils.InvalidArgument("invalid replyToMessageId")
		}
		req.ReplyToMessageId = &replyToId
	}

	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		for _, fileHeader := range form.File["attachments"] {
			upload, err := readUpload(fileHeader)
			if err != nil {
				return serverutils.InvalidArgument("failed to read attachment " + fileHeader.Filename)
			}
			req.Attachments = append(req.Attachments, upload)
		}
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) EditMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return serverutils.InvalidArgument("invalid message id")
	}

	var req dto.EditMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}
	req.Id = messageId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.EditMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit message", res))
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return serverutils.InvalidArgument("invalid message id")
	}

	if err := c.chatService.SoftDeleteMessage(ctx.Context(), userId, messageId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete message", nil))
}

func (c *chatController) PinMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return serverutils.InvalidArgument("invalid message id")
	}

	var req dto.PinMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.InvalidArgument("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.chatService.SetPinned(ctx.Context(), userId, messageId, *req.Pin); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success pin message", nil))
}

func readUpload(fileHeader *multipart.FileHeader) (dto.AttachmentUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return dto.AttachmentUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return dto.AttachmentUpload{}, err
	}

	return dto.AttachmentUpload{
		Name:     fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}
