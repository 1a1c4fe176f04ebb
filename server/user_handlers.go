package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/clemauthority/socialnet/errors"
	"github.com/clemauthority/socialnet/server/response"
)

func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("user id is required", http.StatusBadRequest))
			return
		}

		user, apiErr := s.UserService.GetUser(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "user retrieved successfully", http.StatusOK, user, nil)
	}
}

func (s *Server) handleGetUserByEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		user, apiErr := s.UserService.GetUserByEmail(email)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "user retrieved successfully", http.StatusOK, user, nil)
	}
}

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, apiErr := s.UserService.GetAllUsers()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched all users", http.StatusOK, users, nil)
	}
}
