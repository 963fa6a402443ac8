package handler_test

import (
	"net/http"
	"testing"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	app        *testApp
	admin      *models.User
	user       *models.User
	adminToken string
	userToken  string
}

func (s *AdminHandlerTestSuite) SetupSuite() {
	s.app = newTestApp(s.T())
}

func (s *AdminHandlerTestSuite) TearDownSuite() {
	s.app.close(s.T())
}

func (s *AdminHandlerTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.app.db.DB)
	s.admin = testutil.DefaultAdminUser(s.T(), s.app.db.DB)
	s.user = testutil.DefaultTestUser(s.T(), s.app.db.DB)
	s.adminToken = tokenFor(s.T(), s.admin)
	s.userToken = tokenFor(s.T(), s.user)
}

func (s *AdminHandlerTestSuite) countProjects() int64 {
	var n int64
	s.Require().NoError(s.app.db.DB.Model(&models.Project{}).Count(&n).Error)
	return n
}

func (s *AdminHandlerTestSuite) TestMutationsRequireAdmin() {
	body := map[string]interface{}{"title": "Shop", "description": "An online shop"}

	w := s.app.do(http.MethodPost, "/api/admin/projects", body, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.app.do(http.MethodPost, "/api/admin/projects", body, "garbage")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Token is not valid", messageOf(s.T(), w))

	w = s.app.do(http.MethodPost, "/api/admin/projects", body, s.userToken)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Admin access required", messageOf(s.T(), w))

	w = s.app.do(http.MethodPost, "/api/admin/coffee", map[string]int{"maxCoffee": 99}, s.userToken)
	s.Equal(http.StatusForbidden, w.Code)

	s.Equal(int64(0), s.countProjects())
}

func (s *AdminHandlerTestSuite) TestProjectCRUD() {
	w := s.app.do(http.MethodPost, "/api/admin/projects", map[string]interface{}{
		"title":       "Portfolio",
		"description": "This site",
		"tech":        []string{"Go", " ", "React"},
		"featured":    true,
	}, s.adminToken)
	s.Require().Equal(http.StatusCreated, w.Code)
	created := decode[map[string]interface{}](s.T(), w)
	id := created["_id"].(string)
	s.Equal(models.DefaultIcon, created["image"])
	s.Equal([]interface{}{"Go", "React"}, created["tech"])

	w = s.app.do(http.MethodPut, "/api/admin/projects/"+id, map[string]interface{}{"link": "https://example.com"}, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	updated := decode[map[string]interface{}](s.T(), w)
	s.Equal("Portfolio", updated["title"])
	s.Equal("https://example.com", updated["link"])
	s.Equal(true, updated["featured"])

	w = s.app.do(http.MethodGet, "/api/public/projects/featured", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]map[string]interface{}](s.T(), w), 1)

	w = s.app.do(http.MethodDelete, "/api/admin/projects/"+id, nil, s.adminToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.app.do(http.MethodDelete, "/api/admin/projects/"+id, nil, s.adminToken)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Project not found", messageOf(s.T(), w))
}

func (s *AdminHandlerTestSuite) TestCreateProjectValidation() {
	w := s.app.do(http.MethodPost, "/api/admin/projects", map[string]interface{}{"title": "  "}, s.adminToken)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Title is required", messageOf(s.T(), w))
}

func (s *AdminHandlerTestSuite) TestInvalidID() {
	w := s.app.do(http.MethodPut, "/api/admin/skills/not-a-uuid", map[string]string{"name": "Go"}, s.adminToken)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid ID format", messageOf(s.T(), w))
}

func (s *AdminHandlerTestSuite) TestSkillCRUD() {
	w := s.app.do(http.MethodPost, "/api/admin/skills", map[string]string{"name": "Go", "description": "Backend"}, s.adminToken)
	s.Require().Equal(http.StatusCreated, w.Code)
	id := decode[map[string]interface{}](s.T(), w)["_id"].(string)

	w = s.app.do(http.MethodGet, "/api/public/skills", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	skills := decode[[]map[string]interface{}](s.T(), w)
	s.Require().Len(skills, 1)
	s.Equal(models.DefaultIcon, skills[0]["icon"])

	w = s.app.do(http.MethodDelete, "/api/admin/skills/"+id, nil, s.adminToken)
	s.Equal(http.StatusOK, w.Code)
}

func (s *AdminHandlerTestSuite) TestSingletonDefaults() {
	w := s.app.do(http.MethodGet, "/api/public/about", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	about := decode[map[string]interface{}](s.T(), w)
	s.Equal("Shubham Kumar", about["name"])
	s.Equal("Full Stack MERN Developer", about["title"])

	w = s.app.do(http.MethodGet, "/api/public/coffee", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	coffee := decode[map[string]interface{}](s.T(), w)
	s.Equal(float64(1), coffee["minCoffee"])
	s.Equal(float64(10), coffee["maxCoffee"])
	s.Equal(float64(50), coffee["coffeePrice"])
	s.Equal("INR", coffee["currency"])

	for _, path := range []string{"/api/public/social", "/api/public/resume", "/api/public/payment"} {
		w = s.app.do(http.MethodGet, path, nil, "")
		s.Equal(http.StatusOK, w.Code, path)
	}

	// repeated reads return the same document
	first := decode[map[string]interface{}](s.T(), s.app.do(http.MethodGet, "/api/public/about", nil, ""))
	s.Equal(about["_id"], first["_id"])
}

func (s *AdminHandlerTestSuite) TestUpdateSingletons() {
	w := s.app.do(http.MethodPost, "/api/admin/about", map[string]interface{}{
		"bio": "Builds things",
		"experience": []map[string]string{
			{"role": "Engineer", "company": "Acme", "period": "2023-2024"},
		},
	}, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	about := decode[map[string]interface{}](s.T(), w)
	s.Equal("Shubham Kumar", about["name"])
	s.Equal("Builds things", about["bio"])
	s.Len(about["experience"], 1)

	w = s.app.do(http.MethodPost, "/api/admin/social", map[string]string{"github": "https://github.com/someone"}, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("https://github.com/someone", decode[map[string]interface{}](s.T(), w)["github"])

	w = s.app.do(http.MethodPost, "/api/admin/resume", map[string]string{"fileUrl": "https://cdn.example.com/cv.pdf"}, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("https://cdn.example.com/cv.pdf", decode[map[string]interface{}](s.T(), w)["fileUrl"])

	w = s.app.do(http.MethodPost, "/api/admin/resume", map[string]string{}, s.adminToken)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.app.do(http.MethodPost, "/api/admin/payment", map[string]interface{}{
		"upiId":       "someone@upi",
		"bankAccount": map[string]string{"ifscCode": "sbin0001234", "bankName": "SBI"},
	}, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	payment := decode[map[string]interface{}](s.T(), w)
	s.Equal("someone@upi", payment["upiId"])
	s.Equal("SBIN0001234", payment["bankAccount"].(map[string]interface{})["ifscCode"])

	w = s.app.do(http.MethodPost, "/api/admin/coffee", map[string]float64{"minCoffee": 1.5}, s.adminToken)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("minCoffee must be a whole number", messageOf(s.T(), w))

	w = s.app.do(http.MethodPost, "/api/admin/coffee", map[string]float64{"minCoffee": 2, "maxCoffee": 8}, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(float64(2), decode[map[string]interface{}](s.T(), w)["minCoffee"])

	w = s.app.do(http.MethodPost, "/api/admin/coffee", map[string]int{"minCoffee": 5, "maxCoffee": 2}, s.adminToken)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("minCoffee cannot be greater than maxCoffee", messageOf(s.T(), w))
}

func (s *AdminHandlerTestSuite) TestUsers() {
	w := s.app.do(http.MethodGet, "/api/admin/users", nil, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]map[string]interface{}](s.T(), w), 2)
	s.NotContains(w.Body.String(), "passwordHash")
	s.NotContains(w.Body.String(), "$argon2id$")

	w = s.app.do(http.MethodDelete, "/api/admin/users/"+s.admin.ID.String(), nil, s.adminToken)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("You cannot delete your own account", messageOf(s.T(), w))

	w = s.app.do(http.MethodDelete, "/api/admin/users/"+s.user.ID.String(), nil, s.adminToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.app.do(http.MethodDelete, "/api/admin/users/"+s.user.ID.String(), nil, s.adminToken)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AdminHandlerTestSuite) TestContacts() {
	w := s.app.do(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello",
		"message": "Nice site",
	}, "")
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal("Message sent successfully!", messageOf(s.T(), w))

	w = s.app.do(http.MethodGet, "/api/admin/contacts", nil, s.adminToken)
	s.Require().Equal(http.StatusOK, w.Code)
	contacts := decode[[]map[string]interface{}](s.T(), w)
	s.Require().Len(contacts, 1)
	s.Equal("Hello", contacts[0]["subject"])

	w = s.app.do(http.MethodDelete, "/api/admin/contacts/"+contacts[0]["_id"].(string), nil, s.adminToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.app.do(http.MethodGet, "/api/admin/contacts", nil, s.userToken)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AdminHandlerTestSuite) TestContactValidation() {
	w := s.app.do(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Visitor",
		"email":   "not-an-email",
		"message": "Nice site",
	}, "")
	s.Require().Equal(http.StatusBadRequest, w.Code)

	resp := decode[struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}](s.T(), w)

	fields := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		fields = append(fields, e.Field)
	}
	s.ElementsMatch([]string{"email", "subject"}, fields)
	s.NotEmpty(resp.Message)
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}
