package instructorValidator

import (
	"encoding/json"

	"gamelearn/middleware"
	learningModels "gamelearn/models/learning"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type SubjectRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=5,max=1000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

type ModuleRequest struct {
	SubjectID  uint   `json:"subject_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,min=3,max=100"`
	OrderIndex int    `json:"order_index" validate:"required,gte=1"`
}

type SectionRequest struct {
	ModuleID   uint   `json:"module_id" validate:"required,gt=0"`
	Type       string `json:"type" validate:"required,oneof=CONTENT GAME"`
	OrderIndex int    `json:"order_index" validate:"required,gte=1"`
	Title      string `json:"title" validate:"required,min=3,max=100"`

	// CONTENT only
	ContentRef json.RawMessage `json:"content_ref"`

	// GAME only
	GameType     string          `json:"game_type" validate:"omitempty,oneof=tic-tac-toe hangman quiz memory"`
	GameRules    json.RawMessage `json:"game_rules"`
	MaxScore     int             `json:"max_score" validate:"omitempty,gte=1"`
	PassingScore int             `json:"passing_score" validate:"omitempty,gte=0"`
}

type SectionUpdateRequest struct {
	Title        string          `json:"title" validate:"omitempty,min=3,max=100"`
	ContentRef   json.RawMessage `json:"content_ref"`
	GameRules    json.RawMessage `json:"game_rules"`
	MaxScore     int             `json:"max_score" validate:"omitempty,gte=1"`
	PassingScore int             `json:"passing_score" validate:"omitempty,gte=0"`
}

func CreateSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubjectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedSubject", reqData)
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		// Cross-field checks the struct tags cannot express
		errors := make(map[string]string)
		if reqData.Type == learningModels.SectionGame {
			if reqData.GameType == "" {
				errors["game_type"] = "Game type is required for GAME sections!"
			}
			if reqData.MaxScore <= 0 {
				errors["max_score"] = "Max score is required for GAME sections!"
			}
			if reqData.PassingScore > reqData.MaxScore {
				errors["passing_score"] = "Passing score cannot exceed max score!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

func UpdateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SectionUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedSectionUpdate", reqData)
		return c.Next()
	}
}

// fieldErrors flattens validator errors into the field->message map the
// response helper expects
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed validation: " + fe.Tag()
		}
	}
	return errors
}
