package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/yacinedz/siyaqa/client/guard"
	"github.com/yacinedz/siyaqa/client/views"
	"github.com/yacinedz/siyaqa/core"
	"github.com/yacinedz/siyaqa/core/user"
)

func (cli *commandLine) schools(ctx context.Context, state, gender string) error {
	view := views.NewSchoolsView(cli.api)
	view.SetState(state)
	if err := view.Load(ctx); err != nil {
		return err
	}
	if gender != "" {
		view.ToggleGender(core.Gender(gender))
	}

	schools := view.Schools()
	if len(schools) == 0 {
		fmt.Fprintln(cli.out, "No driving schools found.")
		return nil
	}
	for _, sch := range schools {
		fmt.Fprintf(cli.out, "%s - %s, %s (code %.0f DA, parking %.0f DA, road %.0f DA)\n",
			sch.Name, sch.City, sch.State, sch.PriceCode, sch.PriceParking, sch.PriceRoad)
	}
	return nil
}

// dashboard routes to the view matching the session's role, the same way the
// web front end guards its dashboard pages.
func (cli *commandLine) dashboard(ctx context.Context) error {
	sess, _ := cli.store.Hydrate()
	decision := guard.Evaluate(cli.store, guard.DashboardPath(sess.Role), sess.Role)
	switch decision.State {
	case guard.StateUnauthenticated:
		return errors.New("not logged in, run: cli login -email EMAIL")
	case guard.StateUnauthorized:
		return errors.New("stored session is unusable, run: cli logout")
	}

	switch sess.Role {
	case user.RoleStudent:
		return cli.studentDashboard(ctx)
	case user.RoleTeacher:
		return cli.teacherDashboard(ctx)
	case user.RoleManager:
		return cli.managerDashboard(ctx)
	case user.RoleAdmin:
		fmt.Fprintln(cli.out, "Admins use the admin command, not the dashboard.")
		return nil
	}
	return errors.Errorf("unknown role %q", sess.Role)
}

func (cli *commandLine) studentDashboard(ctx context.Context) error {
	dash := views.NewStudentDashboard(cli.api)
	if err := dash.Load(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Hello %s!\n\n", dash.Profile.FullName)
	fmt.Fprintf(cli.out, "Courses (%d):\n", len(dash.Courses))
	for _, crs := range dash.Courses {
		fmt.Fprintf(cli.out, "  %s - %s\n", crs.Type, crs.Status)
		if crs.GoogleMeetLink != "" {
			fmt.Fprintf(cli.out, "    meet: %s\n", crs.GoogleMeetLink)
		}
	}
	if next := dash.NextCourseType(); next != "" {
		fmt.Fprintf(cli.out, "Next stage available: %s\n", next)
	}

	fmt.Fprintf(cli.out, "Lessons (%d):\n", len(dash.Schedules))
	for _, sch := range dash.Schedules {
		fmt.Fprintf(cli.out, "  %s (%d min)\n", sch.Date.Format("Mon 02 Jan 15:04"), sch.DurationMinutes)
	}

	fmt.Fprintf(cli.out, "Exams (%d):\n", len(dash.Exams))
	for _, ex := range dash.Exams {
		fmt.Fprintf(cli.out, "  %s - %s\n", ex.Date.Format("Mon 02 Jan 15:04"), ex.Status)
	}

	if pending := dash.PendingPayments(); len(pending) > 0 {
		fmt.Fprintf(cli.out, "Pending payments (%d):\n", len(pending))
		for _, p := range pending {
			fmt.Fprintf(cli.out, "  %.0f DA\n", p.Amount)
		}
	}
	return nil
}

func (cli *commandLine) teacherDashboard(ctx context.Context) error {
	dash := views.NewTeacherDashboard(cli.api)
	if err := dash.Load(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Hello %s!\n\n", dash.Profile.FullName)
	active := dash.ActiveCourses()
	fmt.Fprintf(cli.out, "Active courses (%d):\n", len(active))
	for _, crs := range active {
		fmt.Fprintf(cli.out, "  %s - student %s (%s)\n", crs.Type, crs.StudentID, crs.Status)
	}
	fmt.Fprintf(cli.out, "Upcoming lessons (%d):\n", len(dash.Schedules))
	for _, sch := range dash.Schedules {
		fmt.Fprintf(cli.out, "  %s (%d min)\n", sch.Date.Format("Mon 02 Jan 15:04"), sch.DurationMinutes)
	}
	fmt.Fprintf(cli.out, "Exams (%d):\n", len(dash.Exams))
	for _, ex := range dash.Exams {
		fmt.Fprintf(cli.out, "  %s - %s\n", ex.Date.Format("Mon 02 Jan 15:04"), ex.Status)
	}
	return nil
}

func (cli *commandLine) managerDashboard(ctx context.Context) error {
	dash := views.NewManagerDashboard(cli.api)
	if err := dash.Load(ctx); err != nil {
		return err
	}
	if dash.NeedsSetup {
		fmt.Fprintln(cli.out, "You have no driving school yet. Register one first.")
		return nil
	}

	fmt.Fprintf(cli.out, "%s - %s, %s\n\n", dash.School.Name, dash.School.City, dash.School.State)

	fmt.Fprintln(cli.out, dash.TeachersBadge())
	if len(dash.Teachers) == 0 {
		fmt.Fprintln(cli.out, views.NoTeachersMessage)
	}
	for _, tch := range dash.Teachers {
		fmt.Fprintf(cli.out, "  %s (%d years, %v)\n", tch.UserID, tch.YearsExperience, tch.Specialization)
	}

	fmt.Fprintf(cli.out, "Students (%d):\n", len(dash.Students))
	for _, stu := range dash.Students {
		fmt.Fprintf(cli.out, "  %s <%s>\n", stu.FullName, stu.Email)
	}

	fmt.Fprintf(cli.out, "Courses (%d):\n", len(dash.Courses))
	fmt.Fprintf(cli.out, "Fleet (%d):\n", len(dash.Cars))
	for _, c := range dash.Cars {
		fmt.Fprintf(cli.out, "  %s %s %d - %s\n", c.Make, c.Model, c.Year, c.Status)
	}
	return nil
}
