package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

var _ student.Repository = (*Client)(nil)

func studentPath(id string) string {
	return "/students/" + escape(id)
}

func (c *Client) ListStudents(ctx context.Context, query string, page, size int) ([]student.Student, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var res studentList
	if err := c.get(ctx, "/students", q, &res); err != nil {
		return nil, err
	}
	students := make([]student.Student, len(res))
	for i, a := range res {
		students[i] = a.student()
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id string) (student.Student, error) {
	var res apiStudent
	if err := c.get(ctx, studentPath(id), nil, &res); err != nil {
		return student.Student{}, err
	}
	return res.student(), nil
}

func (c *Client) CreateStudent(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	var res apiStudent
	if err := c.write(ctx, http.MethodPost, "/students", ns, &res); err != nil {
		return student.Student{}, err
	}
	return res.student(), nil
}

func (c *Client) UpdateStudent(ctx context.Context, id string, us student.UpdateStudent) (student.Student, error) {
	var res apiStudent
	if err := c.write(ctx, http.MethodPut, studentPath(id), us, &res); err != nil {
		return student.Student{}, err
	}
	return res.student(), nil
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.write(ctx, http.MethodDelete, studentPath(id), nil, nil)
}
