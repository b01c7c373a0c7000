package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meetzy/meetzy-backend/internal/middleware"
	"github.com/meetzy/meetzy-backend/internal/models"
	"github.com/meetzy/meetzy-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const groupImageFolder = "group_uploads"

// GroupView is a group with creator/admin display names resolved.
type GroupView struct {
	models.Group
	CreatedByName  string   `json:"created_by_name,omitempty"`
	GroupAdminName string   `json:"group_admin_name,omitempty"`
	MemberNames    []string `json:"member_names,omitempty"`
}

// CreateGroup creates a group from a multipart form with an optional image.
// The creator becomes creator, admin and sole member.
func CreateGroup(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	location := strings.TrimSpace(r.FormValue("location"))
	description := strings.TrimSpace(r.FormValue("description"))
	startRaw := r.FormValue("startDateTime")
	endRaw := r.FormValue("endDateTime")

	if title == "" || location == "" || description == "" || startRaw == "" || endRaw == "" {
		writeMessage(w, http.StatusBadRequest, "title, location, startDateTime, endDateTime and description are required")
		return
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid startDateTime")
		return
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid endDateTime")
		return
	}

	isLimited := r.FormValue("isLimited") == "true"
	numMembers := 0
	if isLimited {
		numMembers, err = strconv.Atoi(r.FormValue("numMembers"))
		if err != nil || numMembers < 1 {
			writeMessage(w, http.StatusBadRequest, "numMembers must be a positive number for a limited group")
			return
		}
	}

	var image string
	if _, header, err := r.FormFile("image"); err == nil {
		if cloudinaryService == nil {
			writeMessage(w, http.StatusInternalServerError, "File uploads are not available")
			return
		}
		image, err = cloudinaryService.UploadFileFromHeader(r.Context(), header, groupImageFolder)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}
	}

	group := services.NewGroup(user.ID, title, location, description, image, start, end, isLimited, numMembers)
	if err := services.InsertGroup(r.Context(), group); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

// GetGroups lists all groups with creator and admin names resolved.
func GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := services.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var ids []primitive.ObjectID
	for _, g := range groups {
		ids = append(ids, g.CreatedBy)
		if !g.GroupAdmin.IsZero() {
			ids = append(ids, g.GroupAdmin)
		}
	}
	names, err := services.UserNamesByIDs(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, GroupView{
			Group:          g,
			CreatedByName:  names[g.CreatedBy],
			GroupAdminName: names[g.GroupAdmin],
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// GetGroupByID returns one group with member names resolved.
func GetGroupByID(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	group, err := services.FindGroupByID(r.Context(), groupID)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	ids := append([]primitive.ObjectID{group.CreatedBy}, group.Members...)
	if !group.GroupAdmin.IsZero() {
		ids = append(ids, group.GroupAdmin)
	}
	names, err := services.UserNamesByIDs(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}

	view := GroupView{
		Group:          *group,
		CreatedByName:  names[group.CreatedBy],
		GroupAdminName: names[group.GroupAdmin],
	}
	for _, m := range group.Members {
		view.MemberNames = append(view.MemberNames, names[m])
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateGroup applies a partial update. Runs behind GroupAdminOnly; only
// fields present in the form are touched, and a replaced image releases
// the previous Cloudinary asset.
func UpdateGroup(w http.ResponseWriter, r *http.Request) {
	group := middleware.CurrentGroup(r)

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var patch services.GroupPatch
	if v := r.FormValue("title"); v != "" {
		patch.Title = &v
	}
	if v := r.FormValue("location"); v != "" {
		patch.Location = &v
	}
	if v := r.FormValue("description"); v != "" {
		patch.Description = &v
	}
	if v := r.FormValue("startDateTime"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid startDateTime")
			return
		}
		patch.StartDateTime = &t
	}
	if v := r.FormValue("endDateTime"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid endDateTime")
			return
		}
		patch.EndDateTime = &t
	}
	if v := r.FormValue("isLimited"); v != "" {
		b := v == "true"
		patch.IsLimited = &b
	}
	if v := r.FormValue("numMembers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeMessage(w, http.StatusBadRequest, "Invalid numMembers")
			return
		}
		patch.NumMembers = &n
	}

	if _, header, err := r.FormFile("image"); err == nil {
		if cloudinaryService == nil {
			writeMessage(w, http.StatusInternalServerError, "File uploads are not available")
			return
		}
		url, err := cloudinaryService.UploadFileFromHeader(r.Context(), header, groupImageFolder)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		patch.Image = &url
	}

	oldImage, changed := patch.Apply(group)
	if changed {
		if err := services.SaveGroup(r.Context(), group); err != nil {
			writeError(w, err)
			return
		}
	}
	if oldImage != "" && cloudinaryService != nil {
		if err := cloudinaryService.DestroyByURL(r.Context(), oldImage); err != nil {
			log.Printf("Failed to release old group image: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, group)
}

// DeleteGroup removes a group, releasing its image and purging the group
// from every member's back-reference lists. Runs behind GroupAdminOnly.
func DeleteGroup(w http.ResponseWriter, r *http.Request) {
	group := middleware.CurrentGroup(r)

	if group.Image != "" && cloudinaryService != nil {
		if err := cloudinaryService.DestroyByURL(r.Context(), group.Image); err != nil {
			log.Printf("Failed to release group image: %v", err)
		}
	}

	if err := services.DeleteGroup(r.Context(), group); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Group deleted successfully")
}

// JoinGroup adds the current user to a group, guarding against duplicate
// membership and capacity.
func JoinGroup(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	group, err := services.FindGroupByID(r.Context(), groupID)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	change, err := services.ApplyJoin(group, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := services.SaveMembership(r.Context(), group, []services.MemberChange{change}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Joined group successfully", "group": group})
}

// LeaveGroup removes the current user from a group, promoting the
// earliest-joined remaining member when the admin leaves.
func LeaveGroup(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid group id")
		return
	}

	group, err := services.FindGroupByID(r.Context(), groupID)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	changes, err := services.ApplyLeave(group, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := services.SaveMembership(r.Context(), group, changes); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Left group successfully", "group": group})
}

// RemoveMember removes a member on the admin's behalf. Runs behind
// GroupAdminOnly; succession applies if the admin removes themself.
func RemoveMember(w http.ResponseWriter, r *http.Request) {
	group := middleware.CurrentGroup(r)

	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid member id")
		return
	}

	changes, err := services.ApplyRemoveMember(group, targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := services.SaveMembership(r.Context(), group, changes); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Member removed successfully", "group": group})
}
