package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/pagination"
	"unihub/internal/pkg/response"
)

// FriendshipHandler handles friend and friend-request endpoints of a student
type FriendshipHandler struct {
	friendships *services.FriendshipService
}

// NewFriendshipHandler creates a new friendship handler
func NewFriendshipHandler(friendships *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

func studentAndFriend(c *fiber.Ctx) (uint, uint, error) {
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return 0, 0, err
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return 0, 0, err
	}
	return studentID, friendID, nil
}

// Friends lists accepted friends
// @Summary List friends
// @Tags Friendships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Response
// @Router /students/{studentId}/friends [get]
func (h *FriendshipHandler) Friends(c *fiber.Ctx) error {
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}

	page, err := h.friendships.Friends(c.UserContext(), studentID, pagination.GetParams(c))
	if err != nil {
		return err
	}
	return response.Success(c, page)
}

// Requests lists students waiting for an answer
// @Summary List incoming friend requests
// @Tags Friendships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Response
// @Router /students/{studentId}/friend-requests [get]
func (h *FriendshipHandler) Requests(c *fiber.Ctx) error {
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}

	page, err := h.friendships.Requests(c.UserContext(), studentID, pagination.GetParams(c))
	if err != nil {
		return err
	}
	return response.Success(c, page)
}

// Request sends a friend request
// @Summary Send friend request
// @Tags Friendships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param friendId path int true "Friend student ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /students/{studentId}/friends/{friendId} [post]
func (h *FriendshipHandler) Request(c *fiber.Ctx) error {
	studentID, friendID, err := studentAndFriend(c)
	if err != nil {
		return err
	}
	if err := h.friendships.Request(c.UserContext(), studentID, friendID); err != nil {
		return err
	}
	return response.Created(c, fiber.Map{
		"studentId": studentID,
		"friendId":  friendID,
		"status":    domain.FriendshipRequested,
	})
}

// Accept accepts a pending friend request
// @Summary Accept friend request
// @Tags Friendships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param friendId path int true "Requesting student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{studentId}/friends/{friendId} [put]
func (h *FriendshipHandler) Accept(c *fiber.Ctx) error {
	studentID, friendID, err := studentAndFriend(c)
	if err != nil {
		return err
	}
	if err := h.friendships.Accept(c.UserContext(), studentID, friendID); err != nil {
		return err
	}
	return response.Message(c, "friendship.accepted")
}

// Remove ends a friendship
// @Summary Remove friend
// @Tags Friendships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param friendId path int true "Friend student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{studentId}/friends/{friendId} [delete]
func (h *FriendshipHandler) Remove(c *fiber.Ctx) error {
	studentID, friendID, err := studentAndFriend(c)
	if err != nil {
		return err
	}
	if err := h.friendships.Remove(c.UserContext(), studentID, friendID); err != nil {
		return err
	}
	return response.Message(c, "friendship.deleted")
}

// Decline rejects a pending friend request
// @Summary Decline friend request
// @Tags Friendships
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param friendId path int true "Requesting student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{studentId}/friend-requests/{friendId} [delete]
func (h *FriendshipHandler) Decline(c *fiber.Ctx) error {
	studentID, friendID, err := studentAndFriend(c)
	if err != nil {
		return err
	}
	if err := h.friendships.Decline(c.UserContext(), studentID, friendID); err != nil {
		return err
	}
	return response.Message(c, "friendship.declined")
}
