package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/models"
	"github.com/clemauthority/socialnet/server/response"
)

func (s *Server) handleCreateConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateConversationRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		resp, status, apiErr := s.ChatService.CreateConversation(&req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, resp.Msg, status, resp, nil)
	}
}

// handleCreateMessage accepts multipart form data: sender_id, conversation_id
// and at least one of content, image, video. Attachments are uploaded before
// the message row is written so a failed upload never leaves a dangling URL.
func (s *Server) handleCreateMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := models.CreateMessageRequest{
			SenderID:       c.PostForm("sender_id"),
			ConversationID: c.PostForm("conversation_id"),
			Content:        c.PostForm("content"),
		}
		if req.SenderID == "" {
			req.SenderID = c.GetString("userID")
		}

		if imageFile, err := c.FormFile("image"); err == nil && imageFile != nil {
			imageURL, err := s.MediaService.UploadImageFile(imageFile, "chat/images")
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			req.Image = imageURL
		}
		if videoFile, err := c.FormFile("video"); err == nil && videoFile != nil {
			videoURL, err := s.MediaService.UploadVideoFile(videoFile, "chat/videos")
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			req.Video = videoURL
		}

		msg, apiErr := s.ChatService.CreateMessage(&req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "message created successfully", http.StatusCreated, gin.H{"msg": msg}, nil)
	}
}

func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationID")
		if conversationID == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("conversation id is required", http.StatusBadRequest))
			return
		}

		view, apiErr := s.ChatService.GetConversation(conversationID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, view.Msg, http.StatusOK, view, nil)
	}
}
