package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/jobportal/internal/service"
)

func (c *Console) login(ctx context.Context) error {
	c.println("\n===== Login =====")
	f, err := c.readFields("Enter email: ", "Enter password: ")
	if err != nil {
		return err
	}

	user, err := c.services.Auth.Authenticate(ctx, f[0], f[1])
	if err != nil {
		return err
	}
	if user == nil {
		c.println("Invalid email or password. Please try again.")
		return nil
	}

	c.current = user
	c.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	c.println("Login successful!")
	return nil
}

func (c *Console) register(ctx context.Context) error {
	c.println("\n===== Register =====")
	f, err := c.readFields(
		"Enter name: ",
		"Enter email: ",
		"Enter password: ",
		"Enter location: ",
		"Enter skills (comma separated): ",
	)
	if err != nil {
		return err
	}

	_, err = c.services.Auth.Register(ctx, service.RegisterInput{
		Name:     f[0],
		Email:    f[1],
		Password: f[2],
		Location: f[3],
		Skills:   f[4],
	})

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		c.println("Email already registered. Please use a different email.")
	case errors.As(err, &verrs):
		c.printf("Registration failed: %s is missing or invalid.\n", strings.ToLower(verrs[0].Field()))
	case err != nil:
		return err
	default:
		c.println("Registration successful! You can now login.")
	}
	return nil
}

func (c *Console) viewProfile() {
	c.println("\n===== Your Profile =====")
	c.printf("Name: %s\n", c.current.Name)
	c.printf("Email: %s\n", c.current.Email)
	c.printf("Location: %s\n", c.current.Location)
	c.printf("Skills: %s\n", c.current.Skills)
}

func (c *Console) updateProfile(ctx context.Context) error {
	c.println("\n===== Update Profile =====")
	f, err := c.readFields(
		"Enter new name (or press Enter to keep current): ",
		"Enter new location (or press Enter to keep current): ",
		"Enter new skills (or press Enter to keep current): ",
		"Enter new password (or press Enter to keep current): ",
	)
	if err != nil {
		return err
	}

	updated, err := c.services.Users.UpdateProfile(ctx, c.current.ID, service.ProfileUpdate{
		Name:     &f[0],
		Location: &f[1],
		Skills:   &f[2],
		Password: &f[3],
	})
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.printf("Failed to update profile: %s is invalid.\n", strings.ToLower(verrs[0].Field()))
			return nil
		}
		return err
	}

	c.current = updated
	c.println("Profile updated successfully!")
	return nil
}

func (c *Console) searchJobs(ctx context.Context) error {
	c.println("\n===== Search Jobs =====")
	c.println("1. Search by Skills")
	c.println("2. Search by Location")
	c.println("3. View All Jobs")

	var q service.JobSearch
	switch c.readChoice("Enter your choice: ") {
	case 1:
		v, ok := c.readLine("Enter skills to search: ")
		if !ok {
			return errInputClosed
		}
		q.Skills = v
	case 2:
		v, ok := c.readLine("Enter location to search: ")
		if !ok {
			return errInputClosed
		}
		q.Location = v
	case 3:
	default:
		if c.closed {
			return errInputClosed
		}
		c.println("Invalid choice. Showing all jobs.")
	}

	jobs, err := c.services.JobPostings.Search(ctx, q)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		c.println("No jobs found matching your criteria.")
		return nil
	}

	listings, err := c.services.JobPostings.WithCompanies(ctx, jobs)
	if err != nil {
		return err
	}

	c.printf("\nFound %d job(s):\n", len(listings))
	for _, l := range listings {
		company := "Unknown"
		if l.Company != nil {
			company = l.Company.Name
		}
		c.printf("Job ID: %d | Title: %s | Company: %s | Location: %s\n", l.ID, l.Title, company, l.Location)
	}
	return nil
}

func (c *Console) apply(ctx context.Context) error {
	c.println("\n===== Apply for a Job =====")
	v, ok := c.readLine("Enter Job ID: ")
	if !ok {
		return errInputClosed
	}

	jobID, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		c.println("Invalid Job ID. Please enter a valid number.")
		return nil
	}

	_, err = c.services.Applications.Apply(ctx, c.current.ID, jobID)
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		c.printf("Job not found with ID: %d\n", jobID)
	case errors.Is(err, service.ErrAlreadyApplied):
		c.println("You have already applied for this job.")
	case errors.Is(err, service.ErrUserNotFound):
		// The account was removed while logged in.
		c.current = nil
		c.println("Your account no longer exists. Please log in again.")
	case err != nil:
		return err
	default:
		c.println("Application submitted successfully!")
	}
	return nil
}

func (c *Console) viewApplications(ctx context.Context) error {
	c.println("\n===== My Applications =====")
	views, err := c.services.Applications.ListForUser(ctx, c.current.ID)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		c.println("You haven't applied for any jobs yet.")
		return nil
	}

	for _, v := range views {
		c.printf("Application ID: %d | Job: %s | Date: %s | Status: %s\n",
			v.ID, titleOrUnknown(v.Job), v.ApplicationDate.Format(dateLayout), v.Status)
	}
	return nil
}

func (c *Console) viewInterviews(ctx context.Context) error {
	c.println("\n===== My Interviews =====")
	views, err := c.services.Interviews.ListForUser(ctx, c.current.ID)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		c.println("You don't have any scheduled interviews.")
		return nil
	}

	for _, v := range views {
		c.printf("Interview ID: %d | Job: %s | Date: %s | Status: %s\n",
			v.ID, titleOrUnknown(v.Job), v.ScheduledDate.Format(dateLayout), v.Status)
	}
	return nil
}
