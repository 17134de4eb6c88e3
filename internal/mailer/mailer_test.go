package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationSubject(t *testing.T) {
	assert.Equal(t, "New Application for Backend Engineer",
		ApplicationSubject("Backend Engineer"))
}

func TestApplicationBody(t *testing.T) {
	body := ApplicationBody("Boss", "Sam", "sam@x.com", "Backend Engineer",
		"interested", "http://x.test/uploads/abc_cv.pdf")

	assert.Contains(t, body, "Hello Boss,")
	assert.Contains(t, body, "Sam has applied for your job posting: Backend Engineer")
	assert.Contains(t, body, "Email: sam@x.com")
	assert.Contains(t, body, "Message: interested")
	assert.Contains(t, body, "Resume: http://x.test/uploads/abc_cv.pdf")
}

func TestApplicationBodyWithoutResume(t *testing.T) {
	body := ApplicationBody("Boss", "Sam", "sam@x.com", "Backend Engineer", "hi", "")
	assert.Contains(t, body, "Resume: No resume uploaded")
}
