package handler

import (
	"errors"
	"io"
	"strings"

	"main/dto"
	"main/middleware"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// writeNoteError translates service/store failures into HTTP responses:
// missing notes are 404, malformed ids and constraint violations are 400,
// everything else is a 500 carrying the failure message.
func writeNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		utils.NotFound(c)
	case errors.Is(err, repository.ErrInvalidNoteID), errors.Is(err, usecase.ErrValidation):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalError(c, err.Error())
	}
}

func GetNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, err := notesService.ListNotes(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ListNotesResponse{Items: notes})
}

// bindBody decodes a JSON body into a loose map. A missing body is treated
// as an empty object, matching how the fields-all-optional contract reads.
func bindBody(c *gin.Context) (map[string]any, error) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return body, nil
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	body, err := bindBody(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	id, err := notesService.CreateNote(c.Request.Context(), dto.DecodeCreate(body))
	if err != nil {
		writeNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("create")
	utils.Created(c, dto.CreateNoteResponse{ID: id})
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")

	body, err := bindBody(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), noteID, dto.DecodePatch(body))
	if err != nil {
		writeNoteError(c, err)
		return
	}

	middleware.TrackNoteOperation("update")
	utils.Success(c, note)
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	noteID := c.Param("id")
	hard := strings.EqualFold(c.Query("hard"), "true")

	var err error
	if hard {
		err = notesService.DeleteNote(c.Request.Context(), noteID)
	} else {
		err = notesService.TrashNote(c.Request.Context(), noteID)
	}
	if err != nil {
		writeNoteError(c, err)
		return
	}

	if hard {
		middleware.TrackNoteOperation("delete")
	} else {
		middleware.TrackNoteOperation("trash")
	}
	utils.Success(c, dto.DeleteNoteResponse{OK: true, Hard: hard})
}
