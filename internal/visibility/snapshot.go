package visibility

import (
	"context"

	"go-file-share/internal/model"
)

// Snapshot 一次读出的全部文件、用户和连接表，在内存中回答 ShareSource 查询
type Snapshot struct {
	Files       []model.File
	Users       []model.User
	FileUsers   []model.FileUser
	FileGroups  []model.FileGroup
	Memberships []model.UserGroup

	indexed      bool
	fileIDs      Set
	userNames    map[uint]string
	directUsers  map[uint][]uint
	groupShares  map[uint][]uint
	groupMembers map[uint][]uint
}

func (s *Snapshot) index() {
	if s.indexed {
		return
	}
	s.fileIDs = make(Set, len(s.Files))
	for _, f := range s.Files {
		s.fileIDs.Add(f.ID)
	}
	s.userNames = make(map[uint]string, len(s.Users))
	for _, u := range s.Users {
		s.userNames[u.ID] = u.Name
	}
	s.directUsers = make(map[uint][]uint)
	for _, fu := range s.FileUsers {
		s.directUsers[fu.FileID] = append(s.directUsers[fu.FileID], fu.UserID)
	}
	s.groupShares = make(map[uint][]uint)
	for _, fg := range s.FileGroups {
		s.groupShares[fg.FileID] = append(s.groupShares[fg.FileID], fg.GroupID)
	}
	s.groupMembers = make(map[uint][]uint)
	for _, ug := range s.Memberships {
		s.groupMembers[ug.GroupID] = append(s.groupMembers[ug.GroupID], ug.UserID)
	}
	s.indexed = true
}

func (s *Snapshot) FileExists(_ context.Context, fileID uint) (bool, error) {
	s.index()
	return s.fileIDs.Has(fileID), nil
}

func (s *Snapshot) DirectUserIDs(_ context.Context, fileID uint) ([]uint, error) {
	s.index()
	return s.directUsers[fileID], nil
}

func (s *Snapshot) GroupShareIDs(_ context.Context, fileID uint) ([]uint, error) {
	s.index()
	return s.groupShares[fileID], nil
}

func (s *Snapshot) GroupMemberIDs(_ context.Context, groupID uint) ([]uint, error) {
	s.index()
	return s.groupMembers[groupID], nil
}

func (s *Snapshot) UserName(userID uint) (string, bool) {
	s.index()
	name, ok := s.userNames[userID]
	return name, ok
}
