// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	cncmail "github.com/czcorpus/cnc-gokit/mail"
)

var (
	NotFoundMsgPlaceholder = "??"
)

type EmailNotification struct {
	cncmail.NotificationConf
}

// LocalizedSignature returns a mail signature based on configuration
// and provided language. It is able to search for 2-character codes
// in case 5-ones are not matching.
// In case nothing is found, the returned message is NotFoundMsgPlaceholder
// (and an error is returned).
func (enConf EmailNotification) LocalizedSignature(lang string) (string, error) {
	if msg, ok := enConf.Signature[lang]; ok {
		return msg, nil
	}
	lang2 := strings.Split(lang, "-")[0]
	for k, msg := range enConf.Signature {
		if strings.Split(k, "-")[0] == lang2 {
			return msg, nil
		}
	}
	return NotFoundMsgPlaceholder, fmt.Errorf("e-mail signature for language %s not found", lang)
}

func (enConf EmailNotification) HasSignature() bool {
	return len(enConf.Signature) > 0
}

func (enConf EmailNotification) DefaultSignature(lang string) string {
	if lang == "ja" || lang == "ja-JP" {
		return "TANGOより"
	}
	return "Yours TANGO"
}

// Conf wraps the notification setup with SMTP server access data
type Conf struct {
	EmailNotification
	SMTPServer string `json:"smtpServer"`
	SMTPPort   int    `json:"smtpPort"`
	Sender     string `json:"sender"`
}

// SendNotification sends a plain text message to the provided
// recipients. The signature is resolved from the configuration
// using the provided language (with a built-in fallback).
func SendNotification(conf *Conf, lang, subject string, paragraphs, recipients []string) error {
	if conf == nil || conf.SMTPServer == "" {
		return fmt.Errorf("cannot send notification - mail not configured")
	}
	sign := conf.DefaultSignature(lang)
	if conf.HasSignature() {
		if s, err := conf.LocalizedSignature(lang); err == nil {
			sign = s
		}
	}
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", conf.Sender)
	fmt.Fprintf(&body, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&body, "Subject: %s\r\n", subject)
	body.WriteString("MIME-version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	for _, para := range paragraphs {
		body.WriteString(para)
		body.WriteString("\r\n\r\n")
	}
	body.WriteString(sign)
	body.WriteString("\r\n")
	return smtp.SendMail(
		fmt.Sprintf("%s:%d", conf.SMTPServer, conf.SMTPPort),
		nil,
		conf.Sender,
		recipients,
		[]byte(body.String()),
	)
}
