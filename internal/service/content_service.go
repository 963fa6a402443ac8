package service

import (
	"context"
	"strings"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/apperr"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const featuredProjectLimit = 3

var (
	ErrProjectNotFound = apperr.NotFound("Project not found")
	ErrSkillNotFound   = apperr.NotFound("Skill not found")
)

// AboutDefaults seeds the About document the first time it is read
type AboutDefaults struct {
	Name  string
	Title string
}

// ContentService manages the admin-owned portfolio content: projects,
// skills and the About, SocialLinks, Resume and Payment singletons.
type ContentService struct {
	projects      *repository.ProjectRepository
	skills        *repository.Collection[models.Skill]
	about         *repository.Singleton[models.About]
	social        *repository.Singleton[models.SocialLinks]
	resume        *repository.Singleton[models.Resume]
	payment       *repository.Singleton[models.Payment]
	aboutDefaults AboutDefaults
}

func NewContentService(db *gorm.DB, projects *repository.ProjectRepository, aboutDefaults AboutDefaults) *ContentService {
	return &ContentService{
		projects:      projects,
		skills:        repository.NewCollection[models.Skill](db),
		about:         repository.NewSingleton[models.About](db),
		social:        repository.NewSingleton[models.SocialLinks](db),
		resume:        repository.NewSingleton[models.Resume](db),
		payment:       repository.NewSingleton[models.Payment](db),
		aboutDefaults: aboutDefaults,
	}
}

// Projects

type ProjectInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tech        *[]string `json:"tech"`
	Image       *string   `json:"image"`
	Link        *string   `json:"link"`
	Github      *string   `json:"github"`
	Featured    *bool     `json:"featured"`
}

func (in ProjectInput) applyTo(p *models.Project) {
	setTrimmed(&p.Title, in.Title)
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Tech != nil {
		p.Tech = cleanList(*in.Tech)
	}
	setTrimmed(&p.Image, in.Image)
	setTrimmed(&p.Link, in.Link)
	setTrimmed(&p.Github, in.Github)
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
}

func validateProject(p *models.Project) error {
	if p.Title == "" {
		return apperr.BadRequest("Title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return apperr.BadRequest("Description is required")
	}
	return nil
}

func (s *ContentService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

func (s *ContentService) ListFeaturedProjects(ctx context.Context) ([]models.Project, error) {
	return s.projects.ListFeatured(ctx, featuredProjectLimit)
}

func (s *ContentService) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	project := &models.Project{Image: models.DefaultIcon, Tech: []string{}}
	in.applyTo(project)
	if project.Image == "" {
		project.Image = models.DefaultIcon
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		logger.Log.Error("Failed to create project", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("title", project.Title),
	)
	return project, nil
}

// UpdateProject changes only the fields present in the input
func (s *ContentService) UpdateProject(ctx context.Context, id uuid.UUID, in ProjectInput) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	in.applyTo(project)
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projects.Save(ctx, project); err != nil {
		logger.Log.Error("Failed to update project",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project only; purchases keep their reference
// and title snapshot.
func (s *ContentService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	found, err := s.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrProjectNotFound
	}
	logger.Log.Info("Project deleted", zap.String("project_id", id.String()))
	return nil
}

// Skills

type SkillInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (in SkillInput) applyTo(sk *models.Skill) {
	setTrimmed(&sk.Name, in.Name)
	setTrimmed(&sk.Description, in.Description)
	setTrimmed(&sk.Icon, in.Icon)
}

func (s *ContentService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.skills.List(ctx)
}

func (s *ContentService) CreateSkill(ctx context.Context, in SkillInput) (*models.Skill, error) {
	skill := &models.Skill{}
	in.applyTo(skill)
	if skill.Name == "" {
		return nil, apperr.BadRequest("Name is required")
	}
	if skill.Icon == "" {
		skill.Icon = models.DefaultIcon
	}

	if err := s.skills.Create(ctx, skill); err != nil {
		logger.Log.Error("Failed to create skill", zap.Error(err))
		return nil, err
	}
	return skill, nil
}

func (s *ContentService) UpdateSkill(ctx context.Context, id uuid.UUID, in SkillInput) (*models.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, ErrSkillNotFound
	}

	in.applyTo(skill)
	if skill.Name == "" {
		return nil, apperr.BadRequest("Name is required")
	}

	if err := s.skills.Save(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *ContentService) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	found, err := s.skills.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrSkillNotFound
	}
	return nil
}

// About

type AboutInput struct {
	Name         *string                   `json:"name"`
	Title        *string                   `json:"title"`
	Description  *string                   `json:"description"`
	Bio          *string                   `json:"bio"`
	Email        *string                   `json:"email"`
	Phone        *string                   `json:"phone"`
	Location     *string                   `json:"location"`
	ProfileImage *string                   `json:"profileImage"`
	Experience   *[]models.ExperienceEntry `json:"experience"`
	Education    *[]models.EducationEntry  `json:"education"`
}

// GetAbout returns the About document, creating it with defaults if absent
func (s *ContentService) GetAbout(ctx context.Context) (*models.About, error) {
	about, err := s.about.Get(ctx)
	if err != nil || about != nil {
		return about, err
	}

	about = s.defaultAbout()
	if err := s.about.Save(ctx, about); err != nil {
		logger.Log.Error("Failed to create default about", zap.Error(err))
		return nil, err
	}
	return about, nil
}

// UpdateAbout merges the given fields into the About document
func (s *ContentService) UpdateAbout(ctx context.Context, in AboutInput) (*models.About, error) {
	about, err := s.about.Get(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		about = s.defaultAbout()
	}

	setTrimmed(&about.Name, in.Name)
	setTrimmed(&about.Title, in.Title)
	setTrimmed(&about.Description, in.Description)
	setTrimmed(&about.Bio, in.Bio)
	setTrimmed(&about.Email, in.Email)
	setTrimmed(&about.Phone, in.Phone)
	setTrimmed(&about.Location, in.Location)
	setTrimmed(&about.ProfileImage, in.ProfileImage)
	if in.Experience != nil {
		about.Experience = *in.Experience
	}
	if in.Education != nil {
		about.Education = *in.Education
	}

	if about.Name == "" {
		return nil, apperr.BadRequest("Name is required")
	}
	if about.Title == "" {
		return nil, apperr.BadRequest("Title is required")
	}

	if err := s.about.Save(ctx, about); err != nil {
		logger.Log.Error("Error updating about", zap.Error(err))
		return nil, err
	}
	return about, nil
}

func (s *ContentService) defaultAbout() *models.About {
	return &models.About{
		Name:       s.aboutDefaults.Name,
		Title:      s.aboutDefaults.Title,
		Experience: []models.ExperienceEntry{},
		Education:  []models.EducationEntry{},
	}
}

// Social links

type SocialLinksInput struct {
	Github    *string `json:"github"`
	Linkedin  *string `json:"linkedin"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	Youtube   *string `json:"youtube"`
}

func (s *ContentService) GetSocialLinks(ctx context.Context) (*models.SocialLinks, error) {
	links, err := s.social.Get(ctx)
	if err != nil || links != nil {
		return links, err
	}

	links = &models.SocialLinks{}
	if err := s.social.Save(ctx, links); err != nil {
		return nil, err
	}
	return links, nil
}

func (s *ContentService) UpdateSocialLinks(ctx context.Context, in SocialLinksInput) (*models.SocialLinks, error) {
	links, err := s.GetSocialLinks(ctx)
	if err != nil {
		return nil, err
	}

	setTrimmed(&links.Github, in.Github)
	setTrimmed(&links.Linkedin, in.Linkedin)
	setTrimmed(&links.Twitter, in.Twitter)
	setTrimmed(&links.Instagram, in.Instagram)
	setTrimmed(&links.Facebook, in.Facebook)
	setTrimmed(&links.Youtube, in.Youtube)

	if err := s.social.Save(ctx, links); err != nil {
		return nil, err
	}
	return links, nil
}

// Resume

type ResumeInput struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileData string `json:"fileData"`
	FileType string `json:"fileType"`
}

func (s *ContentService) GetResume(ctx context.Context) (*models.Resume, error) {
	resume, err := s.resume.Get(ctx)
	if err != nil || resume != nil {
		return resume, err
	}

	resume = &models.Resume{FileType: models.DefaultResumeType}
	if err := s.resume.Save(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// UpdateResume switches the resume between an uploaded file and an external
// URL. An upload clears the URL and a URL clears the upload.
func (s *ContentService) UpdateResume(ctx context.Context, in ResumeInput) (*models.Resume, error) {
	if in.FileData == "" && strings.TrimSpace(in.FileURL) == "" {
		return nil, apperr.BadRequest("Either fileData or fileUrl is required")
	}

	resume, err := s.GetResume(ctx)
	if err != nil {
		return nil, err
	}

	if in.FileData != "" {
		resume.FileData = in.FileData
		resume.FileName = firstNonEmpty(strings.TrimSpace(in.FileName), "resume.pdf")
		resume.FileType = firstNonEmpty(in.FileType, models.DefaultResumeType)
		resume.FileURL = ""
	} else {
		resume.FileURL = strings.TrimSpace(in.FileURL)
		resume.FileName = firstNonEmpty(strings.TrimSpace(in.FileName), resume.FileName)
		resume.FileData = ""
	}

	if err := s.resume.Save(ctx, resume); err != nil {
		logger.Log.Error("Error updating resume", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Resume updated",
		zap.Bool("uploaded_file", resume.FileData != ""),
		zap.String("file_name", resume.FileName),
	)
	return resume, nil
}

// Payment

type PaymentInput struct {
	UpiID       *string             `json:"upiId"`
	BankAccount *models.BankAccount `json:"bankAccount"`
	QRCode      *string             `json:"qrCode"`
}

func (s *ContentService) GetPayment(ctx context.Context) (*models.Payment, error) {
	payment, err := s.payment.Get(ctx)
	if err != nil || payment != nil {
		return payment, err
	}

	payment = &models.Payment{}
	if err := s.payment.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *ContentService) UpdatePayment(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	payment, err := s.GetPayment(ctx)
	if err != nil {
		return nil, err
	}

	setTrimmed(&payment.UpiID, in.UpiID)
	if in.BankAccount != nil {
		payment.BankAccount = models.BankAccount{
			AccountNumber:     strings.TrimSpace(in.BankAccount.AccountNumber),
			IFSCCode:          strings.ToUpper(strings.TrimSpace(in.BankAccount.IFSCCode)),
			BankName:          strings.TrimSpace(in.BankAccount.BankName),
			AccountHolderName: strings.TrimSpace(in.BankAccount.AccountHolderName),
		}
	}
	if in.QRCode != nil {
		payment.QRCode = *in.QRCode
	}

	if err := s.payment.Save(ctx, payment); err != nil {
		logger.Log.Error("Error updating payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
