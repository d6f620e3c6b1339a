package scaffolding

import "github.com/lithammer/dedent"

// File templates for the generated project. Rendered with text/template
// against a Context; block tags (<dusk>, <horizon>) are resolved afterwards
// by Block depending on the selected add-on packages.

var dockerComposeTemplate = dedent.Dedent(`
	version: "3.8"

	services:
	  nginx:
	    image: nginx:stable
	    restart: unless-stopped
	    ports:
	      - "443:443"
	    volumes:
	      - ./configuration/nginx/conf.d:/etc/nginx/conf.d:ro
	      - ./configuration/nginx/ssl:/etc/nginx/ssl:ro
	      - ./application/{{ .ProjectName }}:/var/www/html:ro
	    depends_on:
	      - php

	  php:
	    build:
	      context: ./docker-compose/services/php
	    restart: unless-stopped
	    user: "{{ .UserID }}:{{ .GroupID }}"
	    working_dir: /var/www/html
	    volumes:
	      - ./application/{{ .ProjectName }}:/var/www/html
	      - ./configuration/supervisor/conf.d:/etc/supervisor/conf.d:ro
	    depends_on:
	      - postgresql
	      - redis

	  postgresql:
	    image: postgres:13-alpine
	    restart: unless-stopped
	    environment:
	      POSTGRES_DB: {{ .PostgresDB }}
	      POSTGRES_USER: {{ .PostgresUser }}
	      POSTGRES_PASSWORD: {{ .PostgresPassword }}
	    volumes:
	      - postgresql-data:/var/lib/postgresql/data

	  redis:
	    image: redis:alpine
	    restart: unless-stopped

	  node:
	    image: node:{{ .NodeTag }}
	    user: "{{ .UserID }}:{{ .GroupID }}"
	    working_dir: /application
	    volumes:
	      - ./application/{{ .ProjectName }}:/application
	    profiles:
	      - tooling

	  adminer:
	    image: adminer:latest
	    restart: unless-stopped
	    ports:
	      - "{{ .AdminerPort }}:8080"
	    depends_on:
	      - postgresql

	  mailhog:
	    image: mailhog/mailhog:latest
	    restart: unless-stopped
	    ports:
	      - "{{ .MailhogPort }}:8025"

	  <dusk>
	  selenium:
	    image: selenium/standalone-chrome:latest
	    restart: unless-stopped
	    volumes:
	      - /dev/shm:/dev/shm
	  </dusk>

	volumes:
	  postgresql-data:
	`)

var runScriptTemplate = dedent.Dedent(`
	#!/bin/sh
	# Helper to run tools inside the {{ .ProjectName }} stack.
	#
	#   ./run artisan <args>    php artisan inside the php service
	#   ./run composer <args>   composer inside the php service
	#   ./run node <args>       node inside the node service

	set -e

	TOOL="$1"

	if [ -z "$TOOL" ]; then
	    echo "usage: ./run artisan|composer|node [arguments]" >&2
	    exit 64
	fi

	shift

	case "$TOOL" in
	    artisan)
	        docker-compose exec php php artisan "$@"
	        ;;
	    composer)
	        docker-compose exec php composer "$@"
	        ;;
	    node)
	        docker-compose run --rm node "$@"
	        ;;
	    *)
	        echo "unknown tool: $TOOL" >&2
	        exit 64
	        ;;
	esac
	`)

var gitignoreTemplate = dedent.Dedent(`
	# Generated TLS material
	configuration/nginx/ssl/*.pem

	# Local environment overrides
	.env.local
	`)

var readmeTemplate = dedent.Dedent(`
	# {{ .ProjectName }}

	A Laravel project running on Docker, scaffolded by laraforge.

	## Services

	| Service    | Address                                |
	|------------|----------------------------------------|
	| Application| https://{{ .ProjectDomain }}           |
	| Adminer    | http://localhost:{{ .AdminerPort }}    |
	| Mailhog    | http://localhost:{{ .MailhogPort }}    |

	## Usage

	Start the stack:

	    docker-compose up -d

	Run artisan or composer inside the stack:

	    ./run artisan migrate
	    ./run composer require some/package

	Stop the stack:

	    docker-compose down

	The TLS certificate under configuration/nginx/ssl is self-signed for
	{{ .ProjectDomain }}; trust it locally or accept the browser warning.
	`)

var nginxDefaultTemplate = dedent.Dedent(`
	server {
	    listen 443 ssl;
	    listen [::]:443 ssl;

	    server_name {{ .ProjectDomain }};

	    ssl_certificate /etc/nginx/ssl/{{ .SSLCertificate }};
	    ssl_certificate_key /etc/nginx/ssl/{{ .SSLKey }};

	    root /var/www/html/public;
	    index index.php;

	    charset utf-8;

	    location / {
	        try_files $uri $uri/ /index.php?$query_string;
	    }

	    location ~ \.php$ {
	        fastcgi_pass php:9000;
	        fastcgi_index index.php;
	        fastcgi_param SCRIPT_FILENAME $realpath_root$fastcgi_script_name;
	        include fastcgi_params;
	    }

	    location ~ /\.(?!well-known).* {
	        deny all;
	    }
	}
	`)

var nginxUtilsTemplate = dedent.Dedent(`
	server {
	    listen 80;
	    listen [::]:80;

	    server_name {{ .ProjectDomain }};

	    return 301 https://$host$request_uri;
	}

	gzip on;
	gzip_types text/plain text/css application/json application/javascript;
	gzip_min_length 1000;
	`)

var supervisordTemplate = dedent.Dedent(`
	[supervisord]
	nodaemon=true
	logfile=/dev/null
	logfile_maxbytes=0

	[program:php-fpm]
	command=php-fpm
	autostart=true
	autorestart=true
	stdout_logfile=/dev/stdout
	stdout_logfile_maxbytes=0
	stderr_logfile=/dev/stderr
	stderr_logfile_maxbytes=0

	<horizon>
	[program:horizon]
	command=php /var/www/html/artisan horizon
	autostart=true
	autorestart=true
	stopwaitsecs=3600
	stdout_logfile=/dev/stdout
	stdout_logfile_maxbytes=0
	</horizon>
	`)

// SupervisorHorizonProgram is appended to supervisord.conf when the horizon
// add-on is installed after initial generation.
var SupervisorHorizonProgram = dedent.Dedent(`
	[program:horizon]
	command=php /var/www/html/artisan horizon
	autostart=true
	autorestart=true
	stopwaitsecs=3600
	stdout_logfile=/dev/stdout
	stdout_logfile_maxbytes=0
	`)

var phpDockerfileTemplate = dedent.Dedent(`
	FROM php:{{ .PHPTag }}

	RUN apt-get update \
	    && apt-get install -y --no-install-recommends \
	        git \
	        libpq-dev \
	        libzip-dev \
	        supervisor \
	        unzip \
	    && rm -rf /var/lib/apt/lists/*

	RUN docker-php-ext-install bcmath pcntl pdo_pgsql zip \
	    && pecl install redis \
	    && docker-php-ext-enable redis

	COPY --from=composer:2 /usr/bin/composer /usr/bin/composer

	WORKDIR /var/www/html

	CMD ["supervisord", "-c", "/etc/supervisor/conf.d/supervisord.conf"]
	`)
