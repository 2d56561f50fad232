package services

import (
	"church_backend/internal/models"
	"church_backend/pkg/utils"
)

// requestScope turns the optional churchId/groupId query values into a filter.
// A church id wins over a group id. An id that does not parse matches nothing.
func requestScope(churchID, groupID string) models.ScopeFilter {
	if churchID != "" {
		id, err := utils.ParseUUIDPtr(churchID)
		if err != nil {
			return models.ScopeFilter{MatchNone: true}
		}
		return models.ScopeFilter{ChurchID: id}
	}
	if groupID != "" {
		id, err := utils.ParseUUIDPtr(groupID)
		if err != nil {
			return models.ScopeFilter{MatchNone: true}
		}
		return models.ScopeFilter{GroupID: id}
	}
	return models.ScopeFilter{}
}

// callerScope is the part of the hierarchy the caller's status lets them see.
func callerScope(caller models.AuthUser) models.ScopeFilter {
	switch {
	case caller.Status.IsGroupLevel():
		id := caller.GroupID
		return models.ScopeFilter{GroupID: &id}
	case caller.Status.IsChurchLevel():
		id := caller.ChurchID
		return models.ScopeFilter{ChurchID: &id}
	}
	return models.ScopeFilter{}
}
