package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"chatlog/internal/model"
	"chatlog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage = 0
	defaultSize = 5
)

// ConversationHandler handles conversation related requests
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(s service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: s}
}

// pageParams reads page/size query parameters, applying the defaults for
// absent values. Supplied values are passed through unvalidated.
func pageParams(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil {
		return 0, 0, errors.New("Invalid page parameter")
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil {
		return 0, 0, errors.New("Invalid size parameter")
	}
	return page, size, nil
}

func (h *ConversationHandler) AddConversation(c *gin.Context) {
	var conversation model.Conversation
	if err := c.ShouldBindJSON(&conversation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	stored, err := h.service.Add(c.Request.Context(), conversation)
	if err != nil {
		log.Printf("Error adding conversation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add conversation"})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *ConversationHandler) GetAllConversations(c *gin.Context) {
	conversations, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Error getting conversations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *ConversationHandler) GetConversationsByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'category' is required"})
		return
	}

	conversations, err := h.service.GetByCategory(c.Request.Context(), category)
	if err != nil {
		log.Printf("Error getting conversations by category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *ConversationHandler) GetConversationsSortedByTime(c *gin.Context) {
	conversations, err := h.service.GetSortedByTime(c.Request.Context())
	if err != nil {
		log.Printf("Error getting conversations sorted by time: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *ConversationHandler) GetConversationsPage(c *gin.Context) {
	page, size, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.GetPage(c.Request.Context(), page, size)
	if err != nil {
		log.Printf("Error getting conversation page: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ConversationHandler) GetConversationsPageByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'category' is required"})
		return
	}
	page, size, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.GetPageByCategory(c.Request.Context(), category, page, size)
	if err != nil {
		log.Printf("Error getting conversation page by category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ConversationHandler) GetConversationsPageSortedByTime(c *gin.Context) {
	page, size, err := pageParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.GetPageSortedByTime(c.Request.Context(), page, size)
	if err != nil {
		log.Printf("Error getting conversation page sorted by time: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ConversationHandler) UpdateConversation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	var conversation model.Conversation
	if err := c.ShouldBindJSON(&conversation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, conversation)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error updating conversation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("Error deleting conversation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation"})
		return
	}
	c.Status(http.StatusOK)
}

// RegisterConversationRoutes registers conversation routes behind the given
// authentication middleware
func (h *ConversationHandler) RegisterConversationRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	chats := rg.Group("/chats")
	chats.Use(authMW)
	{
		chats.POST("/addConversation", h.AddConversation)
		chats.GET("/allConversations", h.GetAllConversations)
		chats.GET("/byCategory", h.GetConversationsByCategory)
		chats.GET("/sortedByTime", h.GetConversationsSortedByTime)
		chats.GET("/conversations", h.GetConversationsPage)
		chats.GET("/conversationsByCategory", h.GetConversationsPageByCategory)
		chats.GET("/conversationsSortedByTime", h.GetConversationsPageSortedByTime)
		chats.PUT("/updateConversation/:id", h.UpdateConversation)
		chats.DELETE("/deleteConversation/:id", h.DeleteConversation)
	}
}
