package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/schoolhub/internal/app/models"
	appRepos "github.com/emre/schoolhub/internal/app/repositories"
	"github.com/emre/schoolhub/internal/pkg/apperrors"
	pkgauth "github.com/emre/schoolhub/internal/pkg/auth"
)

// CreateDefaultData seeds reference departments, a handful of courses and a
// bootstrap teacher account. Without at least one teacher account nobody
// can provision further records, so the seed is what breaks that circle.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)
	teacherRepo := appRepos.NewTeacherRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	departments := []*appModels.Department{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Mathematics", Code: "MATH"},
	}
	for _, dept := range departments {
		err := departmentRepo.Create(ctx, dept)
		if err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Resolve department IDs whether just created or pre-existing
	deptIDByCode := map[string]int64{}
	allDepts, err := departmentRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error loading departments during seed")
		return errors.Join(finalErr, err)
	}
	for _, dept := range allDepts {
		deptIDByCode[dept.Code] = dept.ID
	}

	csID, hasCS := deptIDByCode["CS"]
	mathID, hasMath := deptIDByCode["MATH"]

	if hasCS {
		courses := []*appModels.Course{
			{DepartmentID: csID, Code: "CS101", Name: "Introduction to Programming", Credits: 6},
			{DepartmentID: csID, Code: "CS201", Name: "Data Structures", Credits: 6},
		}
		for _, course := range courses {
			err := courseRepo.Create(ctx, course)
			if err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
				lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating default course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}
	if hasMath {
		course := &appModels.Course{DepartmentID: mathID, Code: "MATH101", Name: "Calculus I", Credits: 5}
		err := courseRepo.Create(ctx, course)
		if err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createBootstrapTeacher(ctx, teacherRepo, userRepo, csID, hasCS, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished")
	return finalErr
}

func createBootstrapTeacher(ctx context.Context, teacherRepo *appRepos.TeacherRepository, userRepo *appRepos.UserRepository, departmentID int64, hasDepartment bool, lgr zerolog.Logger) error {
	const bootstrapUsername = "head.teacher"

	exists, err := userRepo.UsernameExists(ctx, bootstrapUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking bootstrap teacher account")
		return err
	}
	if exists {
		lgr.Debug().Msg("Bootstrap teacher already exists, skipping creation")
		return nil
	}

	if !hasDepartment {
		err := errors.New("no department available for bootstrap teacher")
		lgr.Error().Err(err).Msg("Cannot create bootstrap teacher")
		return err
	}

	lgr.Info().Msg("Creating bootstrap teacher account...")

	hashedPassword, err := pkgauth.HashPassword("ChangeMe123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing bootstrap teacher password")
		return err
	}

	teacher := &appModels.Teacher{
		Name:         "Head Teacher",
		Email:        "head.teacher@schoolhub.app",
		DepartmentID: departmentID,
	}
	user := &appModels.User{
		Username: bootstrapUsername,
		Password: hashedPassword,
		RoleType: appModels.RoleTeacher,
		Enabled:  true,
		Locked:   false,
	}

	if err := teacherRepo.CreateWithAccount(ctx, teacher, user); err != nil {
		lgr.Error().Err(err).Msg("Error creating bootstrap teacher")
		return err
	}

	lgr.Info().Int64("teacherID", teacher.ID).Msg("Bootstrap teacher created, change its password after first login")
	return nil
}
