package services

import (
	"context"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/logger"
	"unihub/internal/pkg/pagination"
)

// FriendshipService manages friend requests between students
type FriendshipService struct {
	friendships repositories.FriendshipRepository
	students    repositories.Store[models.Student]
}

// NewFriendshipService creates a new friendship service
func NewFriendshipService(friendships repositories.FriendshipRepository, stores *repositories.Stores) *FriendshipService {
	return &FriendshipService{
		friendships: friendships,
		students:    stores.Students,
	}
}

var errFriendshipNotFound = domain.NotFound("friendship")

func (s *FriendshipService) ensureStudent(ctx context.Context, id uint) error {
	exists, err := s.students.ExistsScoped(ctx, id, nil)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFound("student")
	}
	return nil
}

// Request sends a friend request from studentID to friendID
func (s *FriendshipService) Request(ctx context.Context, studentID, friendID uint) error {
	if studentID == friendID {
		return domain.IllegalArgument("friend.self.request")
	}
	if err := s.ensureStudent(ctx, friendID); err != nil {
		return err
	}

	err := s.friendships.Create(ctx, &models.Friendship{
		StudentID: studentID,
		FriendID:  friendID,
		Status:    domain.FriendshipRequested,
	})
	if err != nil {
		if repositories.IsDuplicateKey(err) {
			return domain.Conflict("friendship")
		}
		return err
	}

	logger.WithComponent("friendships").Info("friend request sent", "student_id", studentID, "friend_id", friendID)
	return nil
}

// Accept accepts the pending request friendID sent to studentID
func (s *FriendshipService) Accept(ctx context.Context, studentID, friendID uint) error {
	pending, err := s.friendships.FindPending(ctx, friendID, studentID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return errFriendshipNotFound
		}
		return err
	}

	if err := s.friendships.Accept(ctx, pending); err != nil {
		if repositories.IsNotFound(err) {
			return errFriendshipNotFound
		}
		if repositories.IsDuplicateKey(err) {
			return domain.Conflict("friendship")
		}
		return err
	}
	return nil
}

// Decline deletes the pending request friendID sent to studentID
func (s *FriendshipService) Decline(ctx context.Context, studentID, friendID uint) error {
	if err := s.friendships.DeletePending(ctx, friendID, studentID); err != nil {
		if repositories.IsNotFound(err) {
			return errFriendshipNotFound
		}
		return err
	}
	return nil
}

// Remove ends an accepted friendship; both directions are deleted together
func (s *FriendshipService) Remove(ctx context.Context, studentID, friendID uint) error {
	if err := s.friendships.DeletePair(ctx, studentID, friendID); err != nil {
		if repositories.IsNotFound(err) {
			return errFriendshipNotFound
		}
		return err
	}
	return nil
}

// Friends lists the accepted friends of studentID
func (s *FriendshipService) Friends(ctx context.Context, studentID uint, params pagination.Params) (*pagination.Page[*models.StudentResponse], error) {
	return s.listStudents(ctx, s.friendships.FriendsOf(studentID), params)
}

// Requests lists students with a pending request to studentID
func (s *FriendshipService) Requests(ctx context.Context, studentID uint, params pagination.Params) (*pagination.Page[*models.StudentResponse], error) {
	return s.listStudents(ctx, s.friendships.RequestersOf(studentID), params)
}

func (s *FriendshipService) listStudents(ctx context.Context, filter repositories.Filter, params pagination.Params) (*pagination.Page[*models.StudentResponse], error) {
	items, total, err := s.students.FindPageAndCount(ctx, nil, filter, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}
	out := make([]*models.StudentResponse, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToResponse())
	}
	return pagination.NewPage(out, params, total), nil
}
